package selection

import (
	"testing"

	"github.com/prepforge/prepforge/internal/catalog"
)

func TestApportion(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		weights []float64
		want    []int
	}{
		{"exact split", 180, []float64{2, 1, 1}, []int{90, 45, 45}},
		{"no rounding needed", 10, []float64{7, 2, 1}, []int{7, 2, 1}},
		{"remainder tie goes to earlier index", 1, []float64{1, 1}, []int{1, 0}},
		{"one each", 3, []float64{1, 1, 1}, []int{1, 1, 1}},
		{"largest remainder wins", 10, []float64{0.7, 0.2, 0.1}, []int{7, 2, 1}},
		{"zero total", 0, []float64{1, 1}, []int{0, 0}},
		{"zero weights", 5, []float64{0, 0}, []int{0, 0}},
		{"single bucket", 7, []float64{3}, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apportion(tt.total, tt.weights)
			if len(got) != len(tt.want) {
				t.Fatalf("apportion() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("apportion()[%d] = %d, want %d (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestApportion_TotalPreserved(t *testing.T) {
	weights := []float64{0.31, 0.27, 0.22, 0.2}
	for total := 1; total <= 50; total++ {
		got := apportion(total, weights)
		sum := 0
		for _, n := range got {
			sum += n
		}
		if sum != total {
			t.Errorf("apportion(%d) sums to %d: %v", total, sum, got)
		}
	}
}

func TestEnforceFloor(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   []int
	}{
		{"redistributes from largest", []int{5, 0, 0}, []int{3, 1, 1}},
		{"already satisfied", []int{2, 1, 1}, []int{2, 1, 1}},
		{"no donor available", []int{1, 0}, []int{1, 0}},
		{"single zero", []int{3, 0, 1}, []int{2, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := append([]int(nil), tt.counts...)
			enforceFloor(counts)
			for i := range tt.want {
				if counts[i] != tt.want[i] {
					t.Errorf("enforceFloor(%v) = %v, want %v", tt.counts, counts, tt.want)
					break
				}
			}
		})
	}
}

func TestSplitDifficulty(t *testing.T) {
	split := DefaultConfig().DifficultySplit

	tests := []struct {
		name  string
		count int
		want  map[catalog.Difficulty]int
	}{
		{
			name:  "ten slots",
			count: 10,
			want:  map[catalog.Difficulty]int{catalog.DifficultyEasy: 3, catalog.DifficultyModerate: 4, catalog.DifficultyHard: 3},
		},
		{
			name:  "remainder lands on moderate",
			count: 45,
			want:  map[catalog.Difficulty]int{catalog.DifficultyEasy: 13, catalog.DifficultyModerate: 19, catalog.DifficultyHard: 13},
		},
		{
			name:  "single slot",
			count: 1,
			want:  map[catalog.Difficulty]int{catalog.DifficultyModerate: 1},
		},
		{
			name:  "two slots",
			count: 2,
			want:  map[catalog.Difficulty]int{catalog.DifficultyModerate: 2},
		},
		{
			name:  "three slots keep one per bucket",
			count: 3,
			want:  map[catalog.Difficulty]int{catalog.DifficultyEasy: 1, catalog.DifficultyModerate: 1, catalog.DifficultyHard: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := splitDifficulty(catalog.GroupPhysics, CategoryWeak, tt.count, split)

			got := map[catalog.Difficulty]int{}
			total := 0
			for _, c := range cells {
				got[c.Difficulty] = c.Count
				total += c.Count
			}
			if total != tt.count {
				t.Errorf("cells sum to %d, want %d", total, tt.count)
			}
			for d, n := range tt.want {
				if got[d] != n {
					t.Errorf("%s = %d, want %d (cells: %v)", d, got[d], n, cells)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("got buckets %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanQuotas_SubjectRatio(t *testing.T) {
	// All topics unattempted: everything is category random.
	ts := topicSets{byGroup: map[catalog.Group]map[Category][]string{
		catalog.GroupPhysics:   {CategoryRandom: {"phy-a"}},
		catalog.GroupChemistry: {CategoryRandom: {"che-a"}},
		catalog.GroupBiology:   {CategoryRandom: {"bot-a", "zoo-a"}},
	}}

	cfg := DefaultConfig()
	plan := planQuotas(cfg, 180, ts, cfg.DifficultySplit)

	if plan.Total() != 180 {
		t.Fatalf("plan total = %d, want 180", plan.Total())
	}

	byGroup := map[catalog.Group]int{}
	for _, c := range plan.Cells {
		byGroup[c.Group] += c.Count
	}
	if byGroup[catalog.GroupPhysics] != 45 {
		t.Errorf("Physics = %d, want 45", byGroup[catalog.GroupPhysics])
	}
	if byGroup[catalog.GroupChemistry] != 45 {
		t.Errorf("Chemistry = %d, want 45", byGroup[catalog.GroupChemistry])
	}
	if byGroup[catalog.GroupBiology] != 90 {
		t.Errorf("Biology = %d, want 90", byGroup[catalog.GroupBiology])
	}
}

func TestPlanQuotas_CategorySplit(t *testing.T) {
	ts := topicSets{byGroup: map[catalog.Group]map[Category][]string{
		catalog.GroupPhysics: {
			CategoryWeak:   {"phy-weak"},
			CategoryStrong: {"phy-strong"},
			CategoryRandom: {"phy-new"},
		},
	}}

	cfg := DefaultConfig()
	plan := planQuotas(cfg, 10, ts, cfg.DifficultySplit)

	byCategory := map[Category]int{}
	for _, c := range plan.Cells {
		byCategory[c.Category] += c.Count
	}
	if byCategory[CategoryWeak] != 7 {
		t.Errorf("weak = %d, want 7", byCategory[CategoryWeak])
	}
	if byCategory[CategoryStrong] != 2 {
		t.Errorf("strong = %d, want 2", byCategory[CategoryStrong])
	}
	if byCategory[CategoryRandom] != 1 {
		t.Errorf("random = %d, want 1", byCategory[CategoryRandom])
	}
}

func TestPlanQuotas_MissingGroupsReallocate(t *testing.T) {
	// Only Physics topics in the universe: the full count stays in Physics.
	ts := topicSets{byGroup: map[catalog.Group]map[Category][]string{
		catalog.GroupPhysics: {CategoryRandom: {"phy-a"}},
	}}

	cfg := DefaultConfig()
	plan := planQuotas(cfg, 20, ts, cfg.DifficultySplit)

	if plan.Total() != 20 {
		t.Errorf("plan total = %d, want 20", plan.Total())
	}
	for _, c := range plan.Cells {
		if c.Group != catalog.GroupPhysics {
			t.Errorf("unexpected group %q in plan", c.Group)
		}
	}
}

func TestPlanQuotas_SmallCountCoversEveryGroup(t *testing.T) {
	ts := topicSets{byGroup: map[catalog.Group]map[Category][]string{
		catalog.GroupPhysics:   {CategoryRandom: {"phy-a"}},
		catalog.GroupChemistry: {CategoryRandom: {"che-a"}},
		catalog.GroupBiology:   {CategoryRandom: {"bot-a"}},
	}}

	cfg := DefaultConfig()
	plan := planQuotas(cfg, 3, ts, cfg.DifficultySplit)

	byGroup := map[catalog.Group]int{}
	for _, c := range plan.Cells {
		byGroup[c.Group] += c.Count
	}
	for _, g := range catalog.Groups {
		if byGroup[g] != 1 {
			t.Errorf("%s = %d, want 1", g, byGroup[g])
		}
	}
}

func TestPlanQuotas_EmptyUniverse(t *testing.T) {
	cfg := DefaultConfig()
	plan := planQuotas(cfg, 10, topicSets{byGroup: map[catalog.Group]map[Category][]string{}}, cfg.DifficultySplit)
	if len(plan.Cells) != 0 {
		t.Errorf("plan should be empty, got %v", plan.Cells)
	}
}

func TestBuildTopicSets_Categorization(t *testing.T) {
	bank, err := catalog.NewSnapshot(
		[]catalog.Question{
			{ID: "q1", TopicID: "phy-weak"},
			{ID: "q2", TopicID: "phy-strong"},
			{ID: "q3", TopicID: "phy-new"},
		},
		[]catalog.Topic{
			{ID: "phy-weak", Name: "Weak", Subject: catalog.SubjectPhysics},
			{ID: "phy-strong", Name: "Strong", Subject: catalog.SubjectPhysics},
			{ID: "phy-new", Name: "New", Subject: catalog.SubjectPhysics},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	perf := PerformanceSnapshot{TopicAccuracy: map[string]float64{
		"phy-weak":   40,
		"phy-strong": 60, // exactly at threshold counts as strong
	}}

	ts := buildTopicSets(bank, []string{"phy-weak", "phy-strong", "phy-new"}, perf, 60)

	cats := ts.byGroup[catalog.GroupPhysics]
	if len(cats[CategoryWeak]) != 1 || cats[CategoryWeak][0] != "phy-weak" {
		t.Errorf("weak = %v, want [phy-weak]", cats[CategoryWeak])
	}
	if len(cats[CategoryStrong]) != 1 || cats[CategoryStrong][0] != "phy-strong" {
		t.Errorf("strong = %v, want [phy-strong]", cats[CategoryStrong])
	}
	if len(cats[CategoryRandom]) != 1 || cats[CategoryRandom][0] != "phy-new" {
		t.Errorf("random = %v, want [phy-new]", cats[CategoryRandom])
	}
}
