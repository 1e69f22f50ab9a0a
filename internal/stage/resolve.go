package stage

import "offboard/internal/record"

// Resolve returns the stage a case lands on when it is opened.
//
// The result is derived from the record alone, never from a stored cursor, so
// reopening a case after any interruption puts the user back at the furthest
// stage their saved data supports. The signals are folded in order:
//
//	resignation saved        -> Last Working Day
//	last working day present -> Exit Interview
//	exit interview saved     -> Final Pay (property return is skipped)
//	final pay saved          -> Complete Termination
//
// Property return has no requirement, so it is never a landing point on
// resume; it remains reachable through [Prev] and [Next].
func Resolve(rec record.Record) Stage {
	s := ResignationNotice
	if rec.Resignation.Saved {
		s = LastWorkingDay
	}
	if rec.LastWorkingDay != nil {
		s = ExitInterview
	}
	if rec.ExitInterview.Saved {
		s = PropertyReturn
	}
	if s >= PropertyReturn {
		s = FinalPay
	}
	if rec.FinalPay.Saved {
		s = CompleteTermination
	}
	return s.Clamp()
}
