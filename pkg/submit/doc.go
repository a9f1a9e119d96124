// Package submit implements the submission pipeline of a dynamic form: a full
// validation pass, serialization of the answers, transmission to the sink and
// a blocking notification of the outcome.
//
// A Handler is attached to a form and runs on every submit gesture:
//
//	h := submit.NewHandler(submit.NewHTTPSender(url), notifier, submit.WithLogger(logger))
//	h.Attach(f)
//	err := f.Submit(ctx)
//
// Successful submissions reset the form. Failed ones leave every value in
// place so the user can retry.
package submit
