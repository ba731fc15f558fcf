package wizard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type passiveStep struct{ key string }

func (s passiveStep) Key() string { return s.key }

type guardedStep struct {
	key  string
	verr *ValidationError
}

func (s *guardedStep) Key() string                     { return s.key }
func (s *guardedStep) ValidateLeave() *ValidationError { return s.verr }

type finishStep struct {
	key     string
	outcome Outcome
	calls   int
	task    func(ctx context.Context) error
	order   *[]string
}

func (s *finishStep) Key() string { return s.key }

func (s *finishStep) OnFinish(ctx context.Context, tasks Tasks) Outcome {
	s.calls++
	if s.order != nil {
		*s.order = append(*s.order, s.key)
	}
	if s.task != nil {
		tasks.Go(s.key, s.task)
	}
	return s.outcome
}

type enterStep struct {
	key    string
	loaded atomic.Bool
}

func (s *enterStep) Key() string { return s.key }

func (s *enterStep) OnEnter(ctx context.Context, tasks Tasks) {
	tasks.Go(s.key+" load", func(ctx context.Context) error {
		s.loaded.Store(true)
		return nil
	})
}

type recordingDialog struct {
	titles   []string
	messages []string
}

func (d *recordingDialog) ShowMessage(title, message string) {
	d.titles = append(d.titles, title)
	d.messages = append(d.messages, message)
}

func newController(t *testing.T, dialog Dialog, steps ...Step) *Controller {
	t.Helper()
	reg, err := NewRegistry(steps...)
	require.NoError(t, err)
	return NewController(reg, dialog)
}

func TestRequestLeave_UnguardedStepsAlwaysAllowed(t *testing.T) {
	t.Parallel()

	dialog := &recordingDialog{}
	c := newController(t, dialog,
		passiveStep{key: "servercommands"},
		&finishStep{key: "webcam"},
	)

	for _, from := range []string{"", "servercommands", "webcam", "unknown_tab"} {
		require.True(t, c.RequestLeave(from, "next"), "leaving %q should be allowed", from)
	}
	require.Empty(t, dialog.messages, "no dialog expected for unguarded steps")
}

func TestRequestLeave_GuardBlocksAndShowsEveryProblem(t *testing.T) {
	t.Parallel()

	dialog := &recordingDialog{}
	guard := &guardedStep{
		key: "acl",
		verr: &ValidationError{
			Title:    "Fix it",
			Intro:    "Please look over the form.",
			Problems: []string{"Invalid username", "Password mismatch"},
		},
	}
	c := newController(t, dialog, guard, passiveStep{key: "ssh"})

	require.False(t, c.RequestLeave("acl", "ssh"))
	require.Equal(t, []string{"Fix it"}, dialog.titles)
	require.Equal(t, []string{"Please look over the form. Invalid username detected. Password mismatch detected."}, dialog.messages)

	guard.verr = nil
	require.True(t, c.RequestLeave("acl", "ssh"))
	require.Len(t, dialog.messages, 1, "valid step must not open another dialog")
}

func TestRequestLeave_SuffixedTabIDBelongsToStep(t *testing.T) {
	t.Parallel()

	guard := &guardedStep{key: "wizard_acl", verr: &ValidationError{Title: "t", Problems: []string{"Invalid password"}}}
	c := newController(t, nil, guard)

	require.False(t, c.RequestLeave("wizard_acl_tab", "other"))
	require.True(t, c.RequestLeave("wizard_aclx", "other"), "prefix without separator is a different tab")
	require.NotNil(t, c.CheckLeave("wizard_acl"))
}

func TestFinish_AggregatesReloadAndKeepsOrder(t *testing.T) {
	t.Parallel()

	var order []string
	none := &finishStep{key: "a", outcome: OutcomeNone, order: &order}
	reload := &finishStep{key: "b", outcome: OutcomeReload, order: &order}
	alsoNone := &finishStep{key: "c", outcome: OutcomeNone, order: &order}
	c := newController(t, nil, none, passiveStep{key: "passive"}, reload, alsoNone)

	decision, pending := c.Finish(context.Background())
	require.Equal(t, OutcomeReload, decision)
	require.NoError(t, pending.Wait())
	require.Equal(t, []string{"a", "b", "c"}, order)

	c = newController(t, nil, &finishStep{key: "x"}, passiveStep{key: "y"})
	decision, pending = c.Finish(context.Background())
	require.Equal(t, OutcomeNone, decision)
	require.NoError(t, pending.Wait())
}

func TestFinish_DoesNotWaitForTasks(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var secondStarted atomic.Bool

	first := &finishStep{key: "first", outcome: OutcomeReload, task: func(ctx context.Context) error {
		<-release
		return nil
	}}
	second := &finishStep{key: "second", task: func(ctx context.Context) error {
		secondStarted.Store(true)
		return nil
	}}
	c := newController(t, nil, first, second)

	decision, pending := c.Finish(context.Background())
	require.Equal(t, OutcomeReload, decision)
	require.Equal(t, 1, second.calls, "second handler runs while first task is blocked")

	select {
	case <-pending.Done():
		t.Fatal("pending should not be done while a task is blocked")
	default:
	}

	close(release)
	require.NoError(t, pending.Wait())
	require.True(t, secondStarted.Load())
	require.Equal(t, []string{"first", "second"}, pending.Tasks())
}

func TestFinish_TaskErrorsAreJoined(t *testing.T) {
	t.Parallel()

	errACL := errors.New("acl endpoint down")
	errSSH := errors.New("ssh endpoint down")
	c := newController(t, nil,
		&finishStep{key: "acl", outcome: OutcomeReload, task: func(context.Context) error { return errACL }},
		&finishStep{key: "ssh", outcome: OutcomeReload, task: func(context.Context) error { return errSSH }},
	)

	decision, pending := c.Finish(context.Background())
	require.Equal(t, OutcomeReload, decision, "failures never change the optimistic decision")

	err := pending.Wait()
	require.ErrorIs(t, err, errACL)
	require.ErrorIs(t, err, errSSH)
	require.Contains(t, err.Error(), "acl: acl endpoint down")
}

func TestPending_WaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	c := newController(t, nil, &finishStep{key: "slow", task: func(context.Context) error {
		<-release
		return nil
	}})
	_, pending := c.Finish(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, pending.WaitContext(ctx), context.DeadlineExceeded)
}

func TestPending_LateTaskIsDropped(t *testing.T) {
	t.Parallel()

	var late Tasks
	c := newController(t, nil, &captureStep{capture: &late})
	_, pending := c.Finish(context.Background())
	require.NoError(t, pending.Wait())

	var ran atomic.Bool
	late.Go("late", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.False(t, ran.Load())
	require.Empty(t, pending.Tasks())
}

type captureStep struct{ capture *Tasks }

func (s *captureStep) Key() string { return "capture" }

func (s *captureStep) OnFinish(ctx context.Context, tasks Tasks) Outcome {
	*s.capture = tasks
	return OutcomeNone
}

func TestStart_RunsEnterHandlers(t *testing.T) {
	t.Parallel()

	profile := &enterStep{key: "printerprofile"}
	c := newController(t, nil, passiveStep{key: "acl"}, profile)

	pending := c.Start(context.Background())
	require.NoError(t, pending.Wait())
	require.True(t, profile.loaded.Load())
	require.Equal(t, []string{"printerprofile load"}, pending.Tasks())
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	require.Equal(t, OutcomeReload, OutcomeNone.Merge(OutcomeReload))
	require.Equal(t, OutcomeReload, OutcomeReload.Merge(OutcomeNone))
	require.Equal(t, OutcomeNone, OutcomeNone.Merge(OutcomeNone))
	require.Equal(t, "reload", OutcomeReload.String())
	require.Equal(t, "none", OutcomeNone.String())
}
