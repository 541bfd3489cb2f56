package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/exercise-tracker/internal/common/clock"
	"github.com/AlibekovAA/exercise-tracker/internal/common/constants"
	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
	"github.com/AlibekovAA/exercise-tracker/internal/observability/metrics"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/domain"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/repository"
)

type Store interface {
	CreateUser(ctx context.Context, username string) (domain.Summary, error)
	ListUsers(ctx context.Context) ([]domain.Summary, error)
	AppendExercise(ctx context.Context, userID domain.ID, input AppendExerciseInput) (domain.ExerciseEntry, error)
	QueryLog(ctx context.Context, userID domain.ID, query LogQuery) (domain.LogView, error)
}

// AppendExerciseInput carries raw request values. Duration and Date may be
// coerce.Undefined when the client did not send them.
type AppendExerciseInput struct {
	Description string
	Duration    any
	Date        any
}

// LogQuery fields are raw query values; falsy values disable the filter.
type LogQuery struct {
	From  any
	To    any
	Limit any
}

type UserStore struct {
	repo  repository.Registry
	clock clock.Clock
	log   *logger.Logger
}

func NewUserStore(repo repository.Registry, clk clock.Clock, log *logger.Logger) *UserStore {
	return &UserStore{
		repo:  repo,
		clock: clk,
		log:   log,
	}
}

func (s *UserStore) CreateUser(ctx context.Context, username string) (domain.Summary, error) {
	summary, err := s.repo.Create(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "create_user_duplicate",
			}).Warn("create user failed: username already taken")
			return domain.Summary{}, commonerrors.ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "create_user_failed",
		}).Errorf("create user failed: %v", err)
		return domain.Summary{}, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersCreated.Inc()
	metrics.UsersRegistered.Set(float64(s.repo.Count(ctx)))

	s.log.WithFields(ctx, logger.Fields{
		"user_id":  string(summary.ID),
		"username": summary.Username,
		"action":   "user_created",
	}).Info("user created")
	return summary, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.Summary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("list users failed: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"count":  len(users),
		"action": "users_listed",
	}).Debug("users listed")
	return users, nil
}

func (s *UserStore) AppendExercise(ctx context.Context, userID domain.ID, input AppendExerciseInput) (domain.ExerciseEntry, error) {
	exercise := domain.Exercise{
		Description: input.Description,
		Duration:    coerce.ToNumber(input.Duration),
		Date:        s.exerciseDate(input.Date).String(),
	}

	user, err := s.repo.Append(ctx, userID, exercise)
	if err != nil {
		return domain.ExerciseEntry{}, s.mapLookupError(ctx, userID, "append_exercise", err)
	}

	metrics.ExercisesAppended.Inc()
	fields := logger.Fields{
		"user_id":        string(user.ID),
		"exercise_count": user.ExerciseCount,
		"action":         "exercise_appended",
	}
	if !exercise.Duration.Valid() {
		metrics.ExercisesInvalidFields.WithLabelValues("duration").Inc()
		fields["invalid_duration"] = exercise.Duration.Raw()
	}
	if exercise.Date == constants.InvalidDate {
		metrics.ExercisesInvalidFields.WithLabelValues("date").Inc()
		fields["invalid_date"] = coerce.ToString(input.Date)
	}
	s.log.WithFields(ctx, fields).Info("exercise appended")

	return domain.ExerciseEntry{
		ID:       user.ID,
		Username: user.Username,
		Exercise: exercise,
	}, nil
}

func (s *UserStore) QueryLog(ctx context.Context, userID domain.ID, query LogQuery) (domain.LogView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.LogView{}, s.mapLookupError(ctx, userID, "query_log", err)
	}

	entries := user.Log
	filter := "none"

	if coerce.Truthy(query.From) {
		from := coerce.DateFromValue(query.From)
		entries = filterEntries(entries, func(d coerce.Date) bool { return d.OnOrAfter(from) })
		filter = "range"
	}
	if coerce.Truthy(query.To) {
		to := coerce.DateFromValue(query.To)
		entries = filterEntries(entries, func(d coerce.Date) bool { return d.OnOrBefore(to) })
		filter = "range"
	}
	if coerce.Truthy(query.Limit) {
		entries = entries[:coerce.HeadLimit(len(entries), coerce.ToNumber(query.Limit))]
		if filter == "range" {
			filter = "range_limit"
		} else {
			filter = "limit"
		}
	}

	metrics.LogQueriesTotal.WithLabelValues(filter).Inc()
	metrics.LogQueryEntriesReturned.Observe(float64(len(entries)))

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"filter":  filter,
		"count":   len(entries),
		"action":  "log_queried",
	}).Debug("log queried")

	return domain.LogView{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}, nil
}

// exerciseDate falls back to today when no date was provided.
func (s *UserStore) exerciseDate(raw any) coerce.Date {
	if !coerce.Truthy(raw) {
		return coerce.ValidDate(s.clock.Now()).Day()
	}
	return coerce.DateFromValue(raw).Day()
}

func (s *UserStore) mapLookupError(ctx context.Context, userID domain.ID, action string, err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  action + "_not_found",
		}).Warn(action + " failed: user not found")
		return commonerrors.ErrUserNotFound
	}
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"action":  action + "_failed",
	}).Errorf("%s failed: %v", action, err)
	return fmt.Errorf("failed to %s: %w", action, err)
}

// filterEntries reparses the stored date text, so entries stored as
// "Invalid Date" never match.
func filterEntries(log []domain.Exercise, keep func(coerce.Date) bool) []domain.Exercise {
	out := make([]domain.Exercise, 0, len(log))
	for _, e := range log {
		if keep(coerce.ParseDate(e.Date)) {
			out = append(out, e)
		}
	}
	return out
}

var _ Store = (*UserStore)(nil)
