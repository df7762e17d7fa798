package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/meltforce/mesoplan/internal/export"
	"github.com/meltforce/mesoplan/internal/mcp"
	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
	"github.com/meltforce/mesoplan/internal/upload"
)

// formatFlag and startFlag return fresh flags per command; TimestampFlag
// keeps its parsed value on the flag itself.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "output format: json, xlsx or ics",
	}
}

func startFlag() cli.Flag {
	return &cli.TimestampFlag{
		Name:   "start",
		Layout: "2006-01-02",
		Usage:  "calendar start date (YYYY-MM-DD); defaults to next Monday",
	}
}

func startDate(c *cli.Context) time.Time {
	if t := c.Timestamp("start"); t != nil {
		return *t
	}
	return export.NextMonday(time.Now())
}

// writePlan renders m in format to w.
func writePlan(w io.Writer, m *models.Mesocycle, format, id string, start time.Time) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "xlsx":
		return export.WriteWorkbook(w, m)
	case "ics":
		return export.WriteICS(w, m, export.ICSOptions{ID: id, Start: start, Stamp: time.Now()})
	}
	return fmt.Errorf("unknown format %q", format)
}

func checkFormat(format string) error {
	switch format {
	case "json", "xlsx", "ics":
		return nil
	}
	return fmt.Errorf("format must be json, xlsx or ics, got %q", format)
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Generate mesocycles offline from profile YAML files",
		ArgsUsage: "profile.yaml [profile.yaml...]",
		Flags: []cli.Flag{
			formatFlag(),
			startFlag(),
			&cli.IntFlag{Name: "weeks", Usage: "mesocycle length in weeks (default 4)"},
			&cli.StringFlag{Name: "out", Usage: "directory for output files; stdout when empty (json only)"},
			&cli.StringFlag{Name: "feedback", Usage: "feedback YAML from the previous cycle, applied to every profile"},
			&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "profiles planned in parallel"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one profile file is required")
			}
			format, out := c.String("format"), c.String("out")
			if err := checkFormat(format); err != nil {
				return err
			}
			if out == "" && format != "json" {
				return errors.New("--out is required for xlsx and ics output")
			}

			var prior *models.Feedback
			var next *models.NextCycleConfig
			if path := c.String("feedback"); path != "" {
				fb, err := upload.LoadFeedback(path)
				if err != nil {
					return err
				}
				prior = &fb.Feedback
				if fb.FocusSuggestion != "" {
					next = &models.NextCycleConfig{FocusSuggestion: fb.FocusSuggestion}
				}
			}

			paths := c.Args().Slice()
			results, err := planFiles(c, paths, prior, next)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.MkdirAll(out, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
			}
			for i, m := range results {
				name := strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))
				if out == "" {
					if err := writePlan(c.App.Writer, m, format, name, startDate(c)); err != nil {
						return err
					}
					continue
				}
				target := filepath.Join(out, name+"."+format)
				if err := writeFile(target, func(w io.Writer) error {
					return writePlan(w, m, format, name, startDate(c))
				}); err != nil {
					return err
				}
				logger(c).Info("plan written", "profile", paths[i], "file", target, "split", m.Split, "objective", m.Objective)
			}
			return nil
		},
	}
}

// planFiles plans every profile concurrently and returns the results in
// argument order.
func planFiles(c *cli.Context, paths []string, prior *models.Feedback, next *models.NextCycleConfig) ([]*models.Mesocycle, error) {
	results := make([]*models.Mesocycle, len(paths))
	grp, ctx := errgroup.WithContext(c.Context)
	grp.SetLimit(max(c.Int("concurrency"), 1))
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := upload.LoadProfile(path)
			if err != nil {
				return err
			}
			m, err := planner.PlanMesocycle(planner.Request{
				Profile:       p.Profile,
				Schedule:      p.Schedule,
				PriorFeedback: prior,
				NextCycle:     next,
				Weeks:         c.Int("weeks"),
			})
			if err != nil {
				return fmt.Errorf("planning %s: %w", path, err)
			}
			results[i] = m
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func splitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "splits",
		Usage: "Show the split catalog, or the split chosen for a day count",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: -1, Usage: "training days per week"},
			&cli.StringFlag{Name: "experience", Usage: "beginner, intermediate or advanced"},
			&cli.StringFlag{Name: "goal", Usage: "training goal"},
			&cli.StringFlag{Name: "location", Usage: "gym or home"},
			&cli.BoolFlag{Name: "bodyweight-only", Usage: "only bodyweight equipment"},
		},
		Action: func(c *cli.Context) error {
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			days := c.Int("days")
			if days < 0 {
				return enc.Encode(planner.Catalog())
			}
			var eq *models.EquipmentProfile
			if c.IsSet("location") || c.Bool("bodyweight-only") {
				eq = &models.EquipmentProfile{Location: models.ParseLocation(c.String("location")), BodyweightOnly: c.Bool("bodyweight-only")}
			}
			split := planner.SelectSplitArchitecture(days, models.ParseExperience(c.String("experience")), models.ParseGoal(c.String("goal")), eq)
			return enc.Encode(map[string]any{
				"days":          days,
				"split":         split,
				"session_order": planner.GetSessionOrder(split),
			})
		},
	}
}

func requireServer(c *cli.Context) (string, error) {
	u := c.String("server")
	if u == "" {
		return "", errors.New("--server (or MESOPLAN_SERVER) is required")
	}
	return u, nil
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Push profile.yaml and feedback/*.yaml from a plan directory to the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "plan directory"},
			&cli.BoolFlag{Name: "dry-run", Usage: "validate files but don't send them"},
			&cli.BoolFlag{Name: "replan", Usage: "create a new mesocycle when anything was pushed"},
			&cli.StringFlag{Name: "state-dir", Usage: "push state directory (default ~/.mesoplan)"},
		},
		Action: func(c *cli.Context) error {
			log := logger(c)
			serverURL, err := requireServer(c)
			if err != nil && !c.Bool("dry-run") {
				return err
			}

			stateDir := c.String("state-dir")
			if stateDir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolving home directory: %w", err)
				}
				stateDir = filepath.Join(home, ".mesoplan")
			}
			state, err := upload.OpenStateDB(stateDir)
			if err != nil {
				return err
			}
			defer state.Close()

			if c.Bool("dry-run") {
				log.Info("DRY RUN mode: files will be validated but not sent")
			}
			client := upload.NewClient(serverURL, c.String("api-key"))
			stats, err := upload.New(client, state, c.String("dir"), c.Bool("dry-run"), c.Bool("replan"), log).Run(c.Context)
			printStats(c.App.Writer, stats)
			if err != nil {
				return fmt.Errorf("push failed: %w", err)
			}
			log.Info("push complete")
			return nil
		},
	}
}

func printStats(w io.Writer, stats *upload.Stats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Push Summary ===")
	fmt.Fprintf(w, "  Files total:      %d\n", stats.FilesTotal)
	fmt.Fprintf(w, "  Files pushed:     %d\n", stats.FilesPushed)
	fmt.Fprintf(w, "  Files skipped:    %d (unchanged)\n", stats.FilesSkipped)
	fmt.Fprintf(w, "  Files errored:    %d\n", stats.FilesErrored)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Profiles:         %d\n", stats.ProfilesSent)
	fmt.Fprintf(w, "  Feedback:         %d\n", stats.FeedbackSent)
	fmt.Fprintf(w, "  Plans created:    %d\n", stats.PlansCreated)
	fmt.Fprintln(w)
}

func feedbackCommand() *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Record the end-of-cycle evaluation on the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sensation", Usage: "how the cycle felt (e.g. estancado)"},
			&cli.IntFlag{Name: "energy", Usage: "energy level 1-10"},
			&cli.IntFlag{Name: "soreness", Usage: "soreness level 1-10"},
			&cli.IntFlag{Name: "joint-pain", Usage: "joint pain 1-10"},
			&cli.StringFlag{Name: "focus", Usage: "focus suggestion for the next cycle"},
			&cli.BoolFlag{Name: "replan", Usage: "create the next mesocycle right away"},
		},
		Action: func(c *cli.Context) error {
			serverURL, err := requireServer(c)
			if err != nil {
				return err
			}
			client := mcp.NewHTTPClient(serverURL, c.String("api-key"))
			rec, err := client.SubmitFeedback(c.Context, 0, plans.FeedbackInput{
				Feedback: models.Feedback{
					Sensation:     c.String("sensation"),
					EnergyLevel:   c.Int("energy"),
					SorenessLevel: c.Int("soreness"),
					JointPain:     c.Int("joint-pain"),
				},
				FocusSuggestion: c.String("focus"),
			})
			if err != nil {
				return err
			}
			logger(c).Info("feedback recorded", "id", rec.ID)

			if !c.Bool("replan") {
				return nil
			}
			m, err := client.PlanForUser(c.Context, 0, nil)
			if err != nil {
				return err
			}
			logger(c).Info("mesocycle created", "id", m.ID, "objective", m.Plan.Objective, "reason", m.Plan.ObjectiveReason)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Download the current mesocycle from the server as json, xlsx or ics",
		Flags: []cli.Flag{
			formatFlag(),
			startFlag(),
			&cli.StringFlag{Name: "out", Required: true, Usage: "output file"},
		},
		Action: func(c *cli.Context) error {
			serverURL, err := requireServer(c)
			if err != nil {
				return err
			}
			format := c.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			rec, err := mcp.NewHTTPClient(serverURL, "").Current(c.Context, 0)
			if err != nil {
				return err
			}
			return writeFile(c.String("out"), func(w io.Writer) error {
				return writePlan(w, rec.Plan, format, rec.ID.String(), startDate(c))
			})
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP over stdio, backed by the server's REST API",
		Action: func(c *cli.Context) error {
			serverURL, err := requireServer(c)
			if err != nil {
				return err
			}
			client := mcp.NewHTTPClient(serverURL, c.String("api-key"))
			return server.ServeStdio(mcp.New(client, Version, logger(c)))
		},
	}
}
