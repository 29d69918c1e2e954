package terraform

import "sync"

// workDirLocks serializes operations per absolute working directory. The
// external tool keeps its own on-disk state lock, but failing fast here
// surfaces a clear InProgressError instead of letting two invocations race
// for the lock file.
var workDirLocks sync.Map // map[string]*sync.Mutex

// lockWorkDir attempts to claim the working directory for a single
// operation. It returns a release func on success and an *InProgressError
// when another operation already holds the directory.
func lockWorkDir(dir string) (func(), error) {
	v, _ := workDirLocks.LoadOrStore(dir, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, &InProgressError{WorkDir: dir}
	}
	return mu.Unlock, nil
}
