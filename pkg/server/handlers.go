package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	qerrors "github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
	"github.com/matzehuels/questgraph/pkg/render"
)

// ProgressResponse is the body of GET /progress.
type ProgressResponse struct {
	Completed []string `json:"completed"`
	progress.Summary
}

// ToggleResponse is returned by the progress mutations.
type ToggleResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) records(ctx context.Context) ([]quest.Record, error) {
	records, _, err := s.runner.Load(ctx, pipeline.Options{QuestsPath: s.questsPath})
	return records, err
}

func (s *Server) handleListQuests(w http.ResponseWriter, r *http.Request) {
	records, err := s.records(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if boolParam(r, "kappa") {
		records = quest.KappaOnly(records)
	}
	if records == nil {
		records = []quest.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := qerrors.ValidateQuestID(id); err != nil {
		writeError(w, err)
		return
	}
	records, err := s.records(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := quest.Find(records, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) completed(r *http.Request) (progress.Set, error) {
	if s.store == nil {
		return progress.NewSet(), nil
	}
	set, err := s.store.Load(r.Context())
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeStoreUnavailable, err, "load progress")
	}
	return set, nil
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	records, err := s.records(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	set, err := s.completed(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	writeJSON(w, http.StatusOK, ProgressResponse{
		Completed: set.IDs(),
		Summary:   progress.Summarize(ids, set),
	})
}

// progressTarget validates the {id} parameter against the quest file.
func (s *Server) progressTarget(r *http.Request) (string, error) {
	if s.store == nil {
		return "", qerrors.New(qerrors.ErrCodeUnsupported, "no progress store configured")
	}
	id := chi.URLParam(r, "id")
	if err := qerrors.ValidateQuestID(id); err != nil {
		return "", err
	}
	records, err := s.records(r.Context())
	if err != nil {
		return "", err
	}
	if _, err := quest.Find(records, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(id string) (bool, error) {
		return true, s.store.Mark(r.Context(), id)
	})
}

func (s *Server) handleUnmark(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(id string) (bool, error) {
		return false, s.store.Unmark(r.Context(), id)
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(id string) (bool, error) {
		return s.store.Toggle(r.Context(), id)
	})
}

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(id string) (bool, error)) {
	id, err := s.progressTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}
	done, err := fn(id)
	if err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeStoreUnavailable, err, "update progress"))
		return
	}
	observability.Progress().OnProgressChange(r.Context(), id, done)
	writeJSON(w, http.StatusOK, ToggleResponse{ID: id, Completed: done})
}

func (s *Server) handleLayout(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := s.completed(r)
		if err != nil {
			writeError(w, err)
			return
		}
		res, err := s.runner.Execute(r.Context(), pipeline.Options{
			QuestsPath:    s.questsPath,
			KappaOnly:     boolParam(r, "kappa"),
			HideCompleted: boolParam(r, "hide_completed"),
			Completed:     set,
			Config:        s.layout,
			Formats:       []string{string(format)},
			Detailed:      boolParam(r, "detailed"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[string(format)])
	}
}
