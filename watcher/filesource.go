package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/common"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

const (
	acceptedSubDir = "accepted"
	rejectedSubDir = "rejected"
)

// submission is the on-disk form of a problem dropped into the watch
// directory. job_id is optional; a UUID is assigned when it is empty.
type submission struct {
	JobID string           `toml:"job_id"`
	Shots int              `toml:"shots"`
	Spec  core.ProblemSpec `toml:"problem"`
}

type fileSource struct {
	dir         string
	acceptedDir string
	rejectedDir string
	count       int
}

type fileSourceParams struct {
	dir   string
	count int
}

func newFileSource(p *fileSourceParams) (*fileSource, error) {
	if err := common.IsDirWritable(p.dir); err != nil {
		return nil, fmt.Errorf("failed to write to %s: %w", p.dir, err)
	}
	f := &fileSource{
		dir:         p.dir,
		acceptedDir: filepath.Join(p.dir, acceptedSubDir),
		rejectedDir: filepath.Join(p.dir, rejectedSubDir),
		count:       p.count,
	}
	for _, d := range []string{f.acceptedDir, f.rejectedDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("failed to make %s: %w", d, err)
		}
	}
	return f, nil
}

func (f *fileSource) request() ([]core.Job, error) {
	paths, err := f.submittedPaths()
	if err != nil {
		return []core.Job{}, err
	}
	jobs := []core.Job{}
	for _, path := range paths {
		job, err := f.toJob(path)
		if err != nil {
			zap.L().Info(fmt.Sprintf("rejected %s. Reason:%s", path, err))
			f.moveTo(path, f.rejectedDir)
			continue
		}
		f.moveTo(path, f.acceptedDir)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// submittedPaths returns up to count submission files in name order, so
// resubmissions with a timestamped name are picked up oldest first.
func (f *fileSource) submittedPaths() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.dir, err)
	}
	paths := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(f.dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) > f.count {
		paths = paths[:f.count]
	}
	return paths, nil
}

func (f *fileSource) toJob(path string) (core.Job, error) {
	sub := &submission{}
	if _, err := toml.DecodeFile(path, sub); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if sub.JobID == "" {
		sub.JobID = uuid.NewString()
	} else if core.GetJob(sub.JobID) != nil {
		return nil, fmt.Errorf("%w:%s", core.ErrorJobIDConflict, sub.JobID)
	}
	jm := core.GetJobManager()
	if jm == nil {
		return nil, fmt.Errorf("job manager is not initialized")
	}
	jc, err := core.NewJobContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create a job context: %w", err)
	}
	job, err := jm.NewJobWithValidation(
		&core.JobParam{
			JobID: sub.JobID,
			Shots: sub.Shots,
			Spec:  &sub.Spec,
		}, jc)
	if err != nil {
		return nil, err
	}
	job.JobData().Status = core.READY
	zap.L().Debug(fmt.Sprintf("accepted submission %s as job(%s)", path, sub.JobID))
	return job, nil
}

func (f *fileSource) moveTo(path string, dir string) {
	dst := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		zap.L().Error(fmt.Sprintf("failed to move %s to %s. Reason:%s", path, dst, err))
	}
}
