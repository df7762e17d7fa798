package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
)

// ProfileFile is the on-disk form of a training profile: the profile itself
// and the seven-day availability schedule.
type ProfileFile struct {
	Profile  models.Profile         `json:"profile" yaml:"profile"`
	Schedule []models.ScheduleEntry `json:"schedule" yaml:"schedule"`
}

// FeedbackFile is the on-disk form of an end-of-cycle evaluation.
type FeedbackFile struct {
	models.Feedback `yaml:",inline"`
	FocusSuggestion string `json:"focus_suggestion,omitempty" yaml:"focus_suggestion,omitempty"`
}

const (
	profileFileName = "profile.yaml"
	feedbackDirName = "feedback"
)

// LoadProfile reads and validates a profile YAML file.
func LoadProfile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var p ProfileFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if err := planner.ValidateSchedule(p.Schedule); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadFeedback reads a feedback YAML file.
func LoadFeedback(path string) (*FeedbackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feedback %s: %w", path, err)
	}
	var f FeedbackFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feedback %s: %w", path, err)
	}
	return &f, nil
}

// Stats tracks push progress.
type Stats struct {
	FilesTotal   int
	FilesPushed  int
	FilesSkipped int
	FilesErrored int

	ProfilesSent int
	FeedbackSent int
	PlansCreated int
}

// Uploader walks a plan directory holding profile.yaml and feedback/*.yaml
// and pushes new or changed files to the Mesoplan server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	replan bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. When replan is set a new mesocycle is requested
// after any file was pushed.
func New(client *Client, state *StateDB, dir string, dryRun, replan bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		replan: replan,
		log:    log,
	}
}

// Run executes the push pipeline: profile first, then feedback files in
// name order, then an optional replan.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	profilePath := filepath.Join(u.dir, profileFileName)
	if _, err := os.Stat(profilePath); err == nil {
		if err := u.pushFile(ctx, profilePath, u.pushProfile); err != nil {
			return &u.stats, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &u.stats, fmt.Errorf("checking %s: %w", profilePath, err)
	}

	feedback, err := u.feedbackFiles()
	if err != nil {
		return &u.stats, err
	}
	for _, path := range feedback {
		if err := u.pushFile(ctx, path, u.pushFeedback); err != nil {
			return &u.stats, err
		}
	}

	if u.replan && u.stats.FilesPushed > 0 && !u.dryRun {
		if err := u.client.CreatePlan(ctx); err != nil {
			return &u.stats, fmt.Errorf("creating plan: %w", err)
		}
		u.stats.PlansCreated++
		u.log.Info("new mesocycle created")
	}

	return &u.stats, nil
}

func (u *Uploader) feedbackFiles() ([]string, error) {
	dir := filepath.Join(u.dir, feedbackDirName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(e.Name())); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// pushFile hashes path, skips it when unchanged since the last push and
// otherwise hands it to push.
func (u *Uploader) pushFile(ctx context.Context, path string, push func(context.Context, string) error) error {
	u.stats.FilesTotal++

	rel, err := filepath.Rel(u.dir, path)
	if err != nil {
		rel = path
	}
	hash, err := HashFile(path)
	if err != nil {
		u.stats.FilesErrored++
		return fmt.Errorf("hashing %s: %w", rel, err)
	}

	pushed, err := u.state.IsPushed(u.client.ServerURL(), rel, hash)
	if err != nil {
		return fmt.Errorf("checking state for %s: %w", rel, err)
	}
	if pushed {
		u.stats.FilesSkipped++
		u.log.Debug("unchanged, skipping", "file", rel)
		return nil
	}

	if err := push(ctx, path); err != nil {
		u.stats.FilesErrored++
		return fmt.Errorf("pushing %s: %w", rel, err)
	}
	if u.dryRun {
		u.log.Info("dry run: would push", "file", rel)
		return nil
	}

	if err := u.state.MarkPushed(u.client.ServerURL(), rel, hash); err != nil {
		return fmt.Errorf("marking %s pushed: %w", rel, err)
	}
	u.stats.FilesPushed++
	u.log.Info("pushed", "file", rel)
	return nil
}

func (u *Uploader) pushProfile(ctx context.Context, path string) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	if u.dryRun {
		return nil
	}
	if err := u.client.PutProfile(ctx, *p); err != nil {
		return err
	}
	u.stats.ProfilesSent++
	return nil
}

func (u *Uploader) pushFeedback(ctx context.Context, path string) error {
	f, err := LoadFeedback(path)
	if err != nil {
		return err
	}
	if u.dryRun {
		return nil
	}
	if err := u.client.PostFeedback(ctx, *f); err != nil {
		return err
	}
	u.stats.FeedbackSent++
	return nil
}
