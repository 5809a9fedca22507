package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	backupNameLayout     = "2006-01-02T15-04-05"
	backupContentType    = "application/json"
	defaultRestoreWorker = 4
)

// ObjectStore keeps encoded backups outside the primary store.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Snapshot is the full persisted state of the tournament at one instant.
// Backups written before votes were stored carry matches only; restoring one
// leaves the stored votes alone.
type Snapshot struct {
	ExportedAt          time.Time
	Matches             []match.Match
	Predictions         []prediction.Prediction
	IncludesPredictions bool
}

func (s Snapshot) replacesPredictions() bool {
	return s.IncludesPredictions || len(s.Predictions) > 0
}

// BackupFile is an encoded snapshot ready to be written or uploaded.
type BackupFile struct {
	Name        string
	Data        []byte
	Matches     int
	Predictions int
}

type RestoreResult struct {
	Matches     int
	Predictions int
}

type BackupService struct {
	refresher      leaderboardRefresher
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	objects        ObjectStore
	workers        int
	logger         *logging.Logger
	now            func() time.Time
}

func NewBackupService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	objects ObjectStore,
	workers int,
	logger *logging.Logger,
) *BackupService {
	if workers <= 0 {
		workers = defaultRestoreWorker
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BackupService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		objects:        objects,
		workers:        workers,
		logger:         logger,
		now:            time.Now,
	}
}

// SetLeaderboardRefresher registers the component that rebuilds the coin
// leaderboard after a restore.
func (s *BackupService) SetLeaderboardRefresher(refresher leaderboardRefresher) {
	s.refresher = refresher
}

func (s *BackupService) refreshLeaderboard(ctx context.Context) {
	refreshLeaderboardStore(ctx, s.refresher, s.logger, "backup restore")
}

// Export reads every match in match number order together with every vote.
func (s *BackupService) Export(ctx context.Context) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Export")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return Snapshot{}, fmt.Errorf("list matches: %w", err)
	}
	items, err := s.predictionRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return Snapshot{}, fmt.Errorf("list predictions: %w", err)
	}

	return Snapshot{
		ExportedAt:          s.now().UTC(),
		Matches:             match.SortedByNumber(matches),
		Predictions:         items,
		IncludesPredictions: true,
	}, nil
}

// Backup exports and encodes the current state. When upload is set the file
// is also written to the object store.
func (s *BackupService) Backup(ctx context.Context, upload bool) (BackupFile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Backup", attribute.Bool("backup.upload", upload))
	defer span.End()

	snapshot, err := s.Export(ctx)
	if err != nil {
		return BackupFile{}, err
	}
	file, err := EncodeSnapshot(snapshot)
	if err != nil {
		recordSpanError(span, err)
		return BackupFile{}, err
	}

	if upload {
		if s.objects == nil {
			return BackupFile{}, fmt.Errorf("%w: backup storage is not configured", ErrDependencyUnavailable)
		}
		if err := s.objects.Put(ctx, file.Name, file.Data, backupContentType); err != nil {
			recordSpanError(span, err)
			return BackupFile{}, fmt.Errorf("%w: upload backup: %v", ErrDependencyUnavailable, err)
		}
	}

	s.logger.InfoContext(ctx, "backup created",
		"name", file.Name,
		"matches", file.Matches,
		"predictions", file.Predictions,
		"bytes", len(file.Data),
		"uploaded", upload,
	)
	return file, nil
}

// Restore writes a snapshot back. Matches are upserted concurrently; the vote
// history is replaced as a whole afterwards when the snapshot carries one.
func (s *BackupService) Restore(ctx context.Context, snapshot Snapshot) (RestoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Restore",
		attribute.Int("backup.matches", len(snapshot.Matches)),
		attribute.Int("backup.predictions", len(snapshot.Predictions)),
	)
	defer span.End()

	if err := validateSnapshot(snapshot); err != nil {
		return RestoreResult{}, err
	}

	now := s.now().UTC()
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)
	for _, item := range snapshot.Matches {
		item := item.Clone()
		item.Status = match.NormalizeStatus(item.Status)
		item.SyncScore()
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		item.UpdatedAt = now

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := s.matchRepo.UpsertMany(ctx, []match.Match{item}); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("restore match %s: %w", item.ID, err))
				mu.Unlock()
				return
			}
			s.logger.DebugContext(ctx, "match restored", "match_id", item.ID, "status", item.Status)
		}); err != nil {
			workers.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("submit task to worker pool: %w", err))
			mu.Unlock()
			break
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		recordSpanError(span, err)
		return RestoreResult{}, err
	}

	result := RestoreResult{Matches: len(snapshot.Matches)}
	if snapshot.replacesPredictions() {
		if err := s.predictionRepo.ReplaceAll(ctx, snapshot.Predictions); err != nil {
			recordSpanError(span, err)
			return RestoreResult{}, fmt.Errorf("restore predictions: %w", err)
		}
		result.Predictions = len(snapshot.Predictions)
	} else {
		s.logger.InfoContext(ctx, "backup has no votes, stored votes kept")
	}

	s.logger.InfoContext(ctx, "backup restored", "matches", result.Matches, "predictions", result.Predictions)
	s.refreshLeaderboard(ctx)
	return result, nil
}

func validateSnapshot(snapshot Snapshot) error {
	seen := make(map[string]struct{}, len(snapshot.Matches))
	for _, item := range snapshot.Matches {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: backup match without id", ErrInvalidInput)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: duplicate match %s in backup", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
		if !match.IsValidStatus(match.NormalizeStatus(item.Status)) {
			return fmt.Errorf("%w: match %s has unknown status %q", ErrInvalidInput, item.ID, item.Status)
		}
	}
	for _, item := range snapshot.Predictions {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: backup prediction without id", ErrInvalidInput)
		}
		if _, ok := seen[item.MatchID]; !ok {
			return fmt.Errorf("%w: prediction %s references unknown match %s", ErrInvalidInput, item.ID, item.MatchID)
		}
	}
	return nil
}

// BackupName is the file name of a snapshot taken at exportedAt.
func BackupName(exportedAt time.Time) string {
	return "backup_" + exportedAt.UTC().Format(backupNameLayout) + ".json"
}

type backupDocument struct {
	ExportedAt  time.Time          `json:"exportedAt"`
	Matches     []backupMatch      `json:"matches"`
	Predictions []backupPrediction `json:"predictions"`
}

// backupReadDocument tells a missing predictions section apart from an empty one.
type backupReadDocument struct {
	ExportedAt  time.Time           `json:"exportedAt"`
	Matches     []backupMatch       `json:"matches"`
	Predictions *[]backupPrediction `json:"predictions"`
}

type backupGoal struct {
	Player    string    `json:"player"`
	Team      string    `json:"team"`
	Assist    string    `json:"assist,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type backupMatch struct {
	ID                string       `json:"id"`
	MatchNumber       int          `json:"matchNumber"`
	HomeTeam          string       `json:"homeTeam"`
	AwayTeam          string       `json:"awayTeam"`
	Date              string       `json:"date"`
	Time              string       `json:"time"`
	Status            string       `json:"status"`
	ScoreHome         int          `json:"scoreHome"`
	ScoreAway         int          `json:"scoreAway"`
	Goals             []backupGoal `json:"goals"`
	IsFinal           bool         `json:"isFinal,omitempty"`
	ManOfTheMatch     string       `json:"manOfTheMatch,omitempty"`
	MoMWinners        []string     `json:"momWinners,omitempty"`
	PredictionsLocked bool         `json:"predictionsLocked,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type backupPrediction struct {
	ID              string    `json:"id"`
	UserName        string    `json:"userName"`
	MatchID         string    `json:"matchId"`
	MatchNumber     int       `json:"matchNumber"`
	PredictedPlayer string    `json:"predictedPlayer"`
	PredictedTeam   string    `json:"predictedTeam"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// EncodeSnapshot renders a snapshot as indented JSON.
func EncodeSnapshot(snapshot Snapshot) (BackupFile, error) {
	doc := backupDocument{
		ExportedAt:  snapshot.ExportedAt.UTC(),
		Matches:     make([]backupMatch, 0, len(snapshot.Matches)),
		Predictions: make([]backupPrediction, 0, len(snapshot.Predictions)),
	}
	for _, item := range snapshot.Matches {
		doc.Matches = append(doc.Matches, toBackupMatch(item))
	}
	for _, item := range snapshot.Predictions {
		doc.Predictions = append(doc.Predictions, backupPrediction{
			ID:              item.ID,
			UserName:        item.UserName,
			MatchID:         item.MatchID,
			MatchNumber:     item.MatchNumber,
			PredictedPlayer: item.PredictedPlayer,
			PredictedTeam:   item.PredictedTeam,
			SubmittedAt:     item.SubmittedAt,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return BackupFile{}, fmt.Errorf("encode backup: %w", err)
	}

	return BackupFile{
		Name:        BackupName(doc.ExportedAt),
		Data:        append([]byte(nil), buf.B...),
		Matches:     len(doc.Matches),
		Predictions: len(doc.Predictions),
	}, nil
}

// DecodeSnapshot parses a backup file. A bare JSON array is read as the match
// documents written by the first tracker, which has no votes.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty backup", ErrInvalidInput)
	}

	if data[0] == '[' {
		var docs []legacyMatch
		if err := sonic.ConfigStd.Unmarshal(data, &docs); err != nil {
			return Snapshot{}, fmt.Errorf("%w: decode backup: %v", ErrInvalidInput, err)
		}
		out := Snapshot{Matches: make([]match.Match, 0, len(docs))}
		for _, item := range docs {
			out.Matches = append(out.Matches, item.toMatch())
		}
		return out, nil
	}

	var doc backupReadDocument
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode backup: %v", ErrInvalidInput, err)
	}

	out := Snapshot{
		ExportedAt:          doc.ExportedAt,
		Matches:             make([]match.Match, 0, len(doc.Matches)),
		IncludesPredictions: doc.Predictions != nil,
	}
	for _, item := range doc.Matches {
		out.Matches = append(out.Matches, fromBackupMatch(item))
	}
	if doc.Predictions != nil {
		out.Predictions = make([]prediction.Prediction, 0, len(*doc.Predictions))
		for _, item := range *doc.Predictions {
			out.Predictions = append(out.Predictions, prediction.Prediction{
				ID:              item.ID,
				UserName:        item.UserName,
				MatchID:         item.MatchID,
				MatchNumber:     item.MatchNumber,
				PredictedPlayer: item.PredictedPlayer,
				PredictedTeam:   item.PredictedTeam,
				SubmittedAt:     item.SubmittedAt,
			})
		}
	}
	return out, nil
}

func toBackupMatch(item match.Match) backupMatch {
	goals := make([]backupGoal, 0, len(item.Goals))
	for _, goal := range item.Goals {
		goals = append(goals, backupGoal{
			Player:    goal.Player,
			Team:      goal.Team,
			Assist:    goal.Assist,
			Timestamp: goal.CreatedAt,
		})
	}
	return backupMatch{
		ID:                item.ID,
		MatchNumber:       item.Number,
		HomeTeam:          item.Home,
		AwayTeam:          item.Away,
		Date:              item.Date,
		Time:              item.Time,
		Status:            item.Status,
		ScoreHome:         item.ScoreHome,
		ScoreAway:         item.ScoreAway,
		Goals:             goals,
		IsFinal:           item.IsFinal,
		ManOfTheMatch:     item.ManOfTheMatch,
		MoMWinners:        item.MoMWinners,
		PredictionsLocked: item.PredictionsLocked,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func fromBackupMatch(item backupMatch) match.Match {
	goals := make([]match.Goal, 0, len(item.Goals))
	for _, goal := range item.Goals {
		goals = append(goals, match.Goal{
			Player:    goal.Player,
			Team:      goal.Team,
			Assist:    goal.Assist,
			CreatedAt: goal.Timestamp,
		})
	}
	return match.Match{
		ID:                item.ID,
		Number:            item.MatchNumber,
		Home:              item.HomeTeam,
		Away:              item.AwayTeam,
		Date:              item.Date,
		Time:              item.Time,
		Status:            item.Status,
		ScoreHome:         item.ScoreHome,
		ScoreAway:         item.ScoreAway,
		Goals:             goals,
		IsFinal:           item.IsFinal,
		ManOfTheMatch:     item.ManOfTheMatch,
		MoMWinners:        item.MoMWinners,
		PredictionsLocked: item.PredictionsLocked,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}
