package communication

import "errors"

type Notifier interface {
	Info(message string) error
	Error(message string) error
}

// Notifiers sends every message to each notifier and joins their errors.
type Notifiers []Notifier

func (n Notifiers) Info(message string) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.Info(message))
	}
	return errors.Join(errs...)
}

func (n Notifiers) Error(message string) error {
	var errs []error
	for _, notifier := range n {
		errs = append(errs, notifier.Error(message))
	}
	return errors.Join(errs...)
}
