package shell

import (
	"context"

	"github.com/qidk-tools/qidkmon/internal/errors"
)

// Script is an in-memory Runner keyed by command string, used in tests and
// for replaying captured device output. Commands without a scripted reply
// fail the same way an unreachable device would.
type Script struct {
	Replies map[string]string
	Calls   []string
}

func NewScript(replies map[string]string) *Script {
	return &Script{Replies: replies}
}

func (s *Script) Execute(_ context.Context, command string) (string, error) {
	s.Calls = append(s.Calls, command)

	reply, ok := s.Replies[command]
	if !ok {
		return "", errors.New().WithData(ErrDeviceUnreachable, command)
	}

	return reply, nil
}
