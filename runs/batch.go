package runs

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/reusee/undotape/runconfigs"
	"github.com/reusee/undotape/syncs"
	"github.com/reusee/undotape/tapevm"
)

type Program struct {
	Name         string
	Instructions []tapevm.Instruction
}

type BatchResult struct {
	Name   string
	Output []byte
	Result *Result
	Err    error
}

// RunBatch runs programs concurrently, each on its own VM, at most jobs at a time.
// Results are in the order of programs.
// With more than one program, configured snapshot and resume files get the program index as suffix.
type RunBatch func(ctx context.Context, programs []Program, jobs int) []BatchResult

// BatchFile is the snapshot or resume path of the i-th program of a batch of n.
func BatchFile(path string, i, n int) string {
	if path == "" || n <= 1 {
		return path
	}
	return fmt.Sprintf("%s.%d", path, i)
}

func (Module) RunBatch(
	run Run,
	snapshotFile runconfigs.SnapshotFile,
	resumeFile runconfigs.ResumeFile,
) RunBatch {
	return func(ctx context.Context, programs []Program, jobs int) []BatchResult {
		results := make([]BatchResult, len(programs))
		sem := syncs.NewSemaphore(jobs)
		var wg sync.WaitGroup
		for i, program := range programs {
			wg.Go(func() {
				if err := sem.AcquireContext(ctx); err != nil {
					results[i] = BatchResult{
						Name: program.Name,
						Err:  err,
					}
					return
				}
				defer sem.Release()
				buf := new(bytes.Buffer)
				result, err := run(ctx, program.Name, program.Instructions, buf,
					WithSnapshotFile(BatchFile(string(snapshotFile), i, len(programs))),
					WithResumeFile(BatchFile(string(resumeFile), i, len(programs))),
				)
				results[i] = BatchResult{
					Name:   program.Name,
					Output: buf.Bytes(),
					Result: result,
					Err:    err,
				}
			})
		}
		wg.Wait()
		return results
	}
}
