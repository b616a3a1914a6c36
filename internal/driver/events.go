package driver

// EventStatus describes the lifecycle of one file within a run.
type EventStatus uint8

const (
	StatusQueued EventStatus = iota
	StatusWorking
	StatusDone
	StatusUnchanged
	StatusError
)

// Event сообщает наблюдателю (прогресс-бару) о смене статуса файла.
type Event struct {
	File   string
	Status EventStatus
}

func emit(events chan<- Event, file string, status EventStatus) {
	if events == nil {
		return
	}
	events <- Event{File: file, Status: status}
}

func resultStatus(r Result) EventStatus {
	switch {
	case r.Err != nil:
		return StatusError
	case r.Changed:
		return StatusDone
	default:
		return StatusUnchanged
	}
}
