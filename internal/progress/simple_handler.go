package progress

import (
	"fmt"
	"io"
)

// SimpleHandler renders events as one line per event, no timing summary.
type SimpleHandler struct {
	writer io.Writer
}

func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventJarStart:
		fmt.Fprintf(h.writer, "[JAR]  analyzing: %s\n", event.JarName)
	case EventJarOfflineComplete:
		fmt.Fprintf(h.writer, "[JAR]  offline done: %s (%d candidate uids)\n", event.JarName, event.Candidate)
	case EventOnlineSubmitted:
		fmt.Fprintf(h.writer, "[NET]  submitted: %s\n", event.JarName)
	case EventOnlineResolved:
		fmt.Fprintf(h.writer, "[NET]  resolved: %s %s -> %s\n", event.JarName, event.Uid, event.MatchType)
	case EventManualPrompt:
		fmt.Fprintf(h.writer, "[ASK]  %s: %d candidates, needs selection\n", event.JarName, event.Candidate)
	case EventJarDone:
		fmt.Fprintf(h.writer, "[DONE] %s -> %s (%s)\n", event.JarName, event.Uid, event.Duration.Round(1e6))
	case EventJarSkipped:
		fmt.Fprintf(h.writer, "[SKIP] %s (%s)\n", event.JarName, event.Reason)
	case EventInfo:
		fmt.Fprintf(h.writer, "[INFO] %s\n", event.Info)
	}
}
