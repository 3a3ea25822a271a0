package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	"eventx/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository is the postgres EventRepository. Every mutating method runs in
// a transaction that locks the event row first, so same-event operations
// serialize exactly like the in-memory single-writer lock.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// SystemClock satisfies ports.Clock for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator for production wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) CreateEvent(ctx context.Context, event entities.Event) (entities.Event, error) {
	row := eventModelFromEntity(event)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Event{}, domainerrors.ErrInvalidEventInput
		}
		return entities.Event{}, r.logError("lifecycle_repo_create_event_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID int64) (entities.Event, error) {
	var row eventModel
	err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Event{}, domainerrors.ErrUnknownEvent
		}
		return entities.Event{}, r.logError("lifecycle_repo_get_event_failed", err, "event_id", eventID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]entities.Event, error) {
	var rows []eventModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("lifecycle_repo_list_events_failed", err)
	}
	events := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func (r *Repository) GetTeam(ctx context.Context, eventID int64, teamID int64) (entities.Team, error) {
	var row teamModel
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND team_id = ?", eventID, teamID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, eventErr := r.GetEvent(ctx, eventID); eventErr != nil {
				return entities.Team{}, eventErr
			}
			return entities.Team{}, domainerrors.ErrUnknownTeam
		}
		return entities.Team{}, r.logError("lifecycle_repo_get_team_failed", err, "event_id", eventID, "team_id", teamID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTeams(ctx context.Context, eventID int64) ([]entities.Team, error) {
	if _, err := r.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	var rows []teamModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("team_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("lifecycle_repo_list_teams_failed", err, "event_id", eventID)
	}
	teams := make([]entities.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toEntity())
	}
	return teams, nil
}

func (r *Repository) HasVoted(ctx context.Context, eventID int64, participantID string) (bool, error) {
	if _, err := r.GetEvent(ctx, eventID); err != nil {
		return false, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&ballotModel{}).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		Count(&count).Error
	if err != nil {
		return false, r.logError("lifecycle_repo_has_voted_failed", err, "event_id", eventID)
	}
	return count > 0, nil
}

func (r *Repository) MarkPublished(ctx context.Context, eventID int64, now time.Time) (entities.Event, error) {
	var result entities.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.Published {
			return domainerrors.ErrAlreadyPublished
		}
		row.Published = true
		row.UpdatedAt = now
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		result = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Event{}, err
	}
	return result, nil
}

func (r *Repository) MarkCancelled(ctx context.Context, eventID int64, now time.Time) (entities.Event, error) {
	var result entities.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		row.Status = string(entities.EventStatusCancelled)
		row.VotingOpen = false
		row.UpdatedAt = now
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		result = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Event{}, err
	}
	return result, nil
}

func (r *Repository) SetVotingOpen(ctx context.Context, eventID int64, open bool, now time.Time) (entities.Event, error) {
	var result entities.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		row.VotingOpen = open
		row.UpdatedAt = now
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		result = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Event{}, err
	}
	return result, nil
}

func (r *Repository) AddTeam(ctx context.Context, eventID int64, name string, leaderID string, now time.Time) (entities.Team, error) {
	var result entities.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		if !row.Published {
			return domainerrors.ErrNotPublished
		}
		teams, err := loadTeams(tx, eventID)
		if err != nil {
			return err
		}
		if len(teams) >= row.MaxTeams {
			return domainerrors.ErrMaxTeamsReached
		}
		if _, registered := entities.TeamOf(teams, leaderID); registered {
			return domainerrors.ErrAlreadyRegistered
		}
		team := teamModelFromEntity(entities.Team{
			EventID:   eventID,
			TeamID:    int64(len(teams)),
			Name:      name,
			LeaderID:  leaderID,
			Members:   []string{leaderID},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err := tx.Create(&team).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyRegistered
			}
			return err
		}
		result = team.toEntity()
		return nil
	})
	if err != nil {
		return entities.Team{}, err
	}
	return result, nil
}

func (r *Repository) AddMember(ctx context.Context, eventID int64, teamID int64, participantID string, now time.Time) (entities.Team, error) {
	var result entities.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		teams, err := loadTeams(tx, eventID)
		if err != nil {
			return err
		}
		if _, registered := entities.TeamOf(teams, participantID); registered {
			return domainerrors.ErrAlreadyRegistered
		}
		if teamID < 0 || teamID >= int64(len(teams)) {
			return domainerrors.ErrUnknownTeam
		}
		team := teams[teamID]
		if len(team.Members) >= row.MaxTeamSize {
			return domainerrors.ErrTeamFull
		}
		team.Members = append(team.Members, participantID)
		team.UpdatedAt = now
		model := teamModelFromEntity(team)
		if err := tx.Model(&teamModel{}).
			Where("event_id = ? AND team_id = ?", eventID, teamID).
			Updates(map[string]any{
				"members":    model.Members,
				"updated_at": model.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		result = team
		return nil
	})
	if err != nil {
		return entities.Team{}, err
	}
	return result, nil
}

func (r *Repository) RecordVote(ctx context.Context, eventID int64, teamID int64, voterID string, now time.Time) (entities.Team, error) {
	var result entities.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		if !row.VotingOpen {
			return domainerrors.ErrVotingClosed
		}
		teams, err := loadTeams(tx, eventID)
		if err != nil {
			return err
		}
		ownTeam, registered := entities.TeamOf(teams, voterID)
		if !registered {
			return domainerrors.ErrNotRegistered
		}
		if teamID < 0 || teamID >= int64(len(teams)) {
			return domainerrors.ErrUnknownTeam
		}
		if ownTeam == teamID {
			return domainerrors.ErrSelfVote
		}
		var voted int64
		if err := tx.Model(&ballotModel{}).
			Where("event_id = ? AND participant_id = ?", eventID, voterID).
			Count(&voted).Error; err != nil {
			return err
		}
		if voted > 0 {
			return domainerrors.ErrAlreadyVoted
		}
		if err := tx.Create(&ballotModel{
			EventID:       eventID,
			ParticipantID: voterID,
			CastAt:        now,
		}).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}
		if err := tx.Model(&teamModel{}).
			Where("event_id = ? AND team_id = ?", eventID, teamID).
			Updates(map[string]any{
				"vote_count": gorm.Expr("vote_count + 1"),
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		team := teams[teamID]
		team.VoteCount++
		team.UpdatedAt = now
		result = team
		return nil
	})
	if err != nil {
		return entities.Team{}, err
	}
	return result, nil
}

func (r *Repository) FinalizeRanking(ctx context.Context, eventID int64, input entities.RankingInput, now time.Time) ([]entities.Team, error) {
	var ranked []entities.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if row.ResultsFinalized {
			return domainerrors.ErrAlreadyFinalized
		}
		teams, err := loadTeams(tx, eventID)
		if err != nil {
			return err
		}
		order, err := entities.RankOrder(teams, input)
		if err != nil {
			return err
		}
		event := row.toEntity()
		ranked = make([]entities.Team, 0, len(order))
		for i, id := range order {
			team := teams[id]
			team.Rank = i + 1
			team.PrizeAmount = event.PrizeForRank(team.Rank)
			team.UpdatedAt = now
			if err := tx.Model(&teamModel{}).
				Where("event_id = ? AND team_id = ?", eventID, id).
				Updates(map[string]any{
					"rank":         team.Rank,
					"prize_amount": team.PrizeAmount,
					"updated_at":   now,
				}).Error; err != nil {
				return err
			}
			ranked = append(ranked, team)
		}
		row.ResultsFinalized = true
		row.VotingOpen = false
		row.UpdatedAt = now
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

func (r *Repository) MarkDistributed(ctx context.Context, eventID int64, teamID int64, now time.Time) (entities.Team, error) {
	var result entities.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if row.Status == string(entities.EventStatusCancelled) {
			return domainerrors.ErrEventCancelled
		}
		if !row.ResultsFinalized {
			return domainerrors.ErrNotFinalized
		}
		var team teamModel
		err = tx.Where("event_id = ? AND team_id = ?", eventID, teamID).First(&team).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrUnknownTeam
			}
			return err
		}
		if team.PrizeDistributed {
			return domainerrors.ErrAlreadyDistributed
		}
		team.PrizeDistributed = true
		team.UpdatedAt = now
		if err := tx.Save(&team).Error; err != nil {
			return err
		}
		result = team.toEntity()
		return nil
	})
	if err != nil {
		return entities.Team{}, err
	}
	return result, nil
}

func (r *Repository) RevertDistribution(ctx context.Context, eventID int64, teamID int64, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockEvent(tx, eventID); err != nil {
			return err
		}
		return tx.Model(&teamModel{}).
			Where("event_id = ? AND team_id = ?", eventID, teamID).
			Updates(map[string]any{
				"prize_distributed": false,
				"updated_at":        now,
			}).Error
	})
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModel{
		ID:        message.ID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("lifecycle_repo_append_outbox_failed", err, "outbox_id", message.ID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("lifecycle_repo_list_outbox_failed", err)
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, outbox.Message{
			ID:        row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).Error
	if err != nil {
		return r.logError("lifecycle_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func lockEvent(tx *gorm.DB, eventID int64) (eventModel, error) {
	var row eventModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", eventID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return eventModel{}, domainerrors.ErrUnknownEvent
		}
		return eventModel{}, err
	}
	return row, nil
}

func loadTeams(tx *gorm.DB, eventID int64) ([]entities.Team, error) {
	var rows []teamModel
	err := tx.Where("event_id = ?", eventID).Order("team_id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	teams := make([]entities.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toEntity())
	}
	return teams, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "competition/event-lifecycle-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("lifecycle repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
