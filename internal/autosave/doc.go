// Package autosave keeps an open day's log saved while it is being edited.
//
// A Session owns the record for one date. Editors hand it their current
// text: Save writes unconditionally, Autosave writes only when the text
// changed and is not blank. Loop drives Autosave on a fixed interval from a
// single goroutine and saves once more when its context ends, so the last
// keystrokes are never lost on exit.
//
//	session := autosave.NewSession(store, locks, date)
//	loop := autosave.Loop{
//		Interval: cfg.AutosaveInterval,
//		Save:     func(ctx context.Context) error { _, err := session.Autosave(read()); return err },
//	}
//	err := loop.Run(ctx)
package autosave
