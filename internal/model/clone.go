package model

// Clone returns a deep copy of the state. Nil and empty containers keep their shape.
func (s State) Clone() State {
	out := State{
		Settings: s.Settings,
	}
	if s.Teams != nil {
		out.Teams = make([]Team, len(s.Teams))
		copy(out.Teams, s.Teams)
	}
	if s.AnsweredQuestions != nil {
		out.AnsweredQuestions = make([]string, len(s.AnsweredQuestions))
		copy(out.AnsweredQuestions, s.AnsweredQuestions)
	}
	if s.FinalRound != nil {
		fr := &FinalRoundState{Completed: s.FinalRound.Completed}
		if s.FinalRound.Wagers != nil {
			fr.Wagers = make(map[string]int, len(s.FinalRound.Wagers))
			for k, v := range s.FinalRound.Wagers {
				fr.Wagers[k] = v
			}
		}
		if s.FinalRound.Answers != nil {
			fr.Answers = make(map[string]bool, len(s.FinalRound.Answers))
			for k, v := range s.FinalRound.Answers {
				fr.Answers[k] = v
			}
		}
		out.FinalRound = fr
	}
	return out
}
