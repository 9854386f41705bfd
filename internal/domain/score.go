package domain

const (
	QuestionPoints = 10
	AnswerPoints   = 20
)

// ScoreBreakdown explains a user's reputation score.
type ScoreBreakdown struct {
	PositiveQuestions int `json:"positive_questions"`
	PositiveAnswers   int `json:"positive_answers"`
	Total             int `json:"total"`
}

// Score awards QuestionPoints for every authored question and AnswerPoints
// for every authored answer with more likes than dislikes. Nothing is ever
// subtracted.
func (n *Network) Score(id UserID) (int, error) {
	b, err := n.ScoreBreakdown(id)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

func (n *Network) ScoreBreakdown(id UserID) (ScoreBreakdown, error) {
	u, err := n.User(id)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	var b ScoreBreakdown
	for _, qid := range u.questions {
		if netPositive(n.questions[qid-1]) {
			b.PositiveQuestions++
		}
	}
	for _, aid := range u.answers {
		if netPositive(n.answers[aid-1]) {
			b.PositiveAnswers++
		}
	}
	b.Total = b.PositiveQuestions*QuestionPoints + b.PositiveAnswers*AnswerPoints
	return b, nil
}
