package quiz

// Option is one selectable answer. Picking it counts one vote toward its
// suitable type.
type Option struct {
	ID           int    `json:"id"`
	QuestionID   int    `json:"questionId"`
	Label        string `json:"label"`
	SuitableType string `json:"suitableType"`
	IsDeleted    bool   `json:"-"`
}

// Question groups the options shown on one quiz step. Deleted questions
// and options are soft-deleted so past answers stay resolvable.
type Question struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Options   []Option `json:"options"`
	IsDeleted bool     `json:"-"`
}
