package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chelnak/ysmrr"
)

// TaskManager drives the spinner display for the catalog phase. With output
// disabled (JSON mode) it stays silent except for errors on stderr.
type TaskManager struct {
	sm    ysmrr.SpinnerManager
	isOut bool
}

type Task struct {
	spinner *ysmrr.Spinner
	manager *TaskManager
	title   string
}

func InitTaskManager(isOut bool) *TaskManager {
	tm := &TaskManager{sm: ysmrr.NewSpinnerManager(), isOut: isOut}
	if isOut {
		tm.sm.Start()
	}
	return tm
}

func (tm *TaskManager) Stop() {
	if tm.isOut {
		tm.sm.Stop()
	}
}

func (tm *TaskManager) Run(title string, callback func(task *Task)) {
	context := &Task{manager: tm, title: title}
	if tm.isOut {
		context.spinner = tm.sm.AddSpinner(title)
	}
	callback(context)
}

func (t *Task) Complete() {
	if t.spinner == nil {
		return
	}
	t.spinner.Complete()
}

func (t *Task) Printf(format string, a ...interface{}) {
	if t.spinner == nil {
		return
	}
	t.spinner.UpdateMessagef(format, a...)
}

func (t *Task) Println(message string) {
	if t.spinner == nil {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	t.spinner.UpdateMessage(message)
}

func (t *Task) CheckError(err error) {
	if err == nil {
		return
	}
	if t.spinner != nil {
		t.Printf("Fatal: %s, err: %v", strings.ToLower(t.title), err)
		t.spinner.Error()
		t.manager.Stop()
	} else {
		fmt.Fprintf(os.Stderr, "Fatal: %s, err: %v\n", strings.ToLower(t.title), err)
	}
	os.Exit(1)
}
