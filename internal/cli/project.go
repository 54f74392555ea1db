package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/studiolane/roomcraft/pkg/pipeline"
	"github.com/studiolane/roomcraft/pkg/session"
)

// defaultProject returns the starter project used when nothing is saved yet.
func defaultProject() session.Project {
	return session.Project{
		Preferences: pipeline.DefaultPreferences(),
		Room:        pipeline.DefaultRoom(),
		Budget:      pipeline.DefaultBudget(),
	}
}

// projectSource tracks where a project was loaded from so edits can be
// written back to the same place.
type projectSource struct {
	path string            // project file, when given
	cli  *session.CLIStore // saved CLI session otherwise
}

// openProject loads the working project.
//
// With a path, the project comes from that JSON file. Without one, the CLI's
// saved session is used, falling back to the starter project on first run.
func (c *CLI) openProject(ctx context.Context, path string) (*session.Session, *projectSource, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read project %s: %w", path, err)
		}
		var project session.Project
		if err := json.Unmarshal(data, &project); err != nil {
			return nil, nil, fmt.Errorf("parse project %s: %w", path, err)
		}
		return session.New(project, 0), &projectSource{path: path}, nil
	}

	store, err := session.NewCLIStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	sess, err := store.GetSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		sess = session.New(defaultProject(), 0)
	}
	return sess, &projectSource{cli: store}, nil
}

// save writes the session's project back to its source.
func (s *projectSource) save(ctx context.Context, sess *session.Session) error {
	if s.path != "" {
		data, err := json.MarshalIndent(sess.Project, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal project: %w", err)
		}
		if err := os.WriteFile(s.path, data, 0644); err != nil {
			return fmt.Errorf("write project %s: %w", s.path, err)
		}
		return nil
	}

	sess.Touch()
	return s.cli.SaveSession(ctx, sess)
}
