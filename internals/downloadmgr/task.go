package downloadmgr

import "path/filepath"

// Task is a URL, target pair with an optional sha1 that will be downloaded using http(s)
type Task struct {
	URL    string
	Target string
	// Sha1 is the expected lowercase hex sha1. Tasks without one are
	// never considered valid by content
	Sha1 string
	// Size in bytes if known (only used for progress)
	Size int64
}

// NewTask creates a task to be queued that will download the file using HTTP(S)
func NewTask(URL string, Target string, sha1 string) Task {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return Task{URL: URL, Target: Target, Sha1: sha1}
}

// Name returns the file name of the target
func (t Task) Name() string {
	return filepath.Base(t.Target)
}

// Queue is an ordered list of tasks without duplicate targets
type Queue struct {
	tasks   []Task
	targets map[string]struct{}
}

// Add appends tasks whose target is not queued yet. It returns the number of tasks added
func (q *Queue) Add(tasks ...Task) int {
	if q.targets == nil {
		q.targets = make(map[string]struct{})
	}
	added := 0
	for _, t := range tasks {
		key := filepath.Clean(t.Target)
		if _, ok := q.targets[key]; ok {
			continue
		}
		q.targets[key] = struct{}{}
		q.tasks = append(q.tasks, t)
		added++
	}
	return added
}

// Tasks returns the queued tasks in insertion order
func (q *Queue) Tasks() []Task {
	return q.tasks
}

// Len returns the number of queued tasks
func (q *Queue) Len() int {
	return len(q.tasks)
}
