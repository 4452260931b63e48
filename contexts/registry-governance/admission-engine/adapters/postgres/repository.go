package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository implements the engine's storage ports on postgres via gorm.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateApplication(ctx context.Context, application entities.Application) error {
	row := applicationModelFromEntity(application)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrApplicationExists
		}
		return r.logError("admission_repo_create_application_failed", err,
			"application_id", application.ApplicationID,
			"candidate", application.Candidate,
		)
	}
	return nil
}

func (r *Repository) ReplaceApplication(ctx context.Context, previousID string, application entities.Application) error {
	update := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("kind = ? AND candidate = ? AND application_id = ?", string(application.Kind), application.Candidate, previousID).
		Updates(applicationUpdatesFromEntity(application))
	if update.Error != nil {
		return r.logError("admission_repo_replace_application_failed", update.Error,
			"application_id", application.ApplicationID,
			"previous_id", previousID,
			"candidate", application.Candidate,
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrApplicationNotFound
	}
	return nil
}

func (r *Repository) UpdateApplication(ctx context.Context, application entities.Application) error {
	update := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(applicationUpdatesFromEntity(application))
	if update.Error != nil {
		return r.logError("admission_repo_update_application_failed", update.Error,
			"application_id", application.ApplicationID,
			"candidate", application.Candidate,
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrApplicationNotFound
	}
	return nil
}

func (r *Repository) GetApplication(ctx context.Context, kind entities.Kind, candidate string) (entities.Application, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND candidate = ?", string(kind), candidate).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Application{}, domainerrors.ErrApplicationNotFound
		}
		return entities.Application{}, r.logError("admission_repo_get_application_failed", err,
			"kind", string(kind),
			"candidate", candidate,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRipeApplications(ctx context.Context, kind entities.Kind, now time.Time, limit int) ([]entities.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []applicationModel
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Where("phase NOT IN ?", []string{string(entities.PhaseApproved), string(entities.PhaseRejected)}).
		Where("phase_deadline IS NOT NULL AND phase_deadline < ?", now.UTC()).
		Order("phase_deadline ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_ripe_failed", err, "kind", string(kind))
	}
	applications := make([]entities.Application, 0, len(rows))
	for _, row := range rows {
		applications = append(applications, row.toEntity())
	}
	return applications, nil
}

func (r *Repository) SaveRound(ctx context.Context, round entities.VoteRound) error {
	row := roundModelFromEntity(round)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}, {Name: "round_index"}},
		DoUpdates: clause.Assignments(map[string]any{
			"support_total":    row.SupportTotal,
			"oppose_total":     row.OpposeTotal,
			"challenger":       row.Challenger,
			"challenger_stake": row.ChallengerStake,
			"resolved":         row.Resolved,
			"support_won":      row.SupportWon,
			"updated_at":       row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("admission_repo_save_round_failed", err,
			"application_id", round.ApplicationID,
			"round_index", round.RoundIndex,
		)
	}
	return nil
}

func (r *Repository) GetRound(ctx context.Context, applicationID string, roundIndex int) (entities.VoteRound, error) {
	var row roundModel
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND round_index = ?", applicationID, roundIndex).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteRound{}, domainerrors.ErrRoundNotFound
		}
		return entities.VoteRound{}, r.logError("admission_repo_get_round_failed", err,
			"application_id", applicationID,
			"round_index", roundIndex,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRounds(ctx context.Context, applicationID string) ([]entities.VoteRound, error) {
	var rows []roundModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("round_index ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_rounds_failed", err, "application_id", applicationID)
	}
	rounds := make([]entities.VoteRound, 0, len(rows))
	for _, row := range rows {
		rounds = append(rounds, row.toEntity())
	}
	return rounds, nil
}

func (r *Repository) SaveDeposit(ctx context.Context, deposit entities.VoteDeposit) error {
	row := depositModelFromEntity(deposit)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}, {Name: "round_index"}, {Name: "participant"}},
		DoUpdates: clause.Assignments(map[string]any{
			"side":       row.Side,
			"amount":     row.Amount,
			"withdrawn":  row.Withdrawn,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("admission_repo_save_deposit_failed", err,
			"application_id", deposit.ApplicationID,
			"round_index", deposit.RoundIndex,
			"participant", deposit.Participant,
		)
	}
	return nil
}

func (r *Repository) GetDeposit(ctx context.Context, applicationID string, roundIndex int, participant string) (entities.VoteDeposit, bool, error) {
	var row depositModel
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND round_index = ? AND participant = ?", applicationID, roundIndex, participant).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteDeposit{}, false, nil
		}
		return entities.VoteDeposit{}, false, r.logError("admission_repo_get_deposit_failed", err,
			"application_id", applicationID,
			"round_index", roundIndex,
			"participant", participant,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListDepositsByParticipant(ctx context.Context, applicationID string, participant string) ([]entities.VoteDeposit, error) {
	var rows []depositModel
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND participant = ?", applicationID, participant).
		Order("round_index ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_deposits_by_participant_failed", err,
			"application_id", applicationID,
			"participant", participant,
		)
	}
	deposits := make([]entities.VoteDeposit, 0, len(rows))
	for _, row := range rows {
		deposits = append(deposits, row.toEntity())
	}
	return deposits, nil
}

func (r *Repository) ListDepositsByApplication(ctx context.Context, applicationID string) ([]entities.VoteDeposit, error) {
	var rows []depositModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("round_index ASC, participant ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_deposits_failed", err, "application_id", applicationID)
	}
	deposits := make([]entities.VoteDeposit, 0, len(rows))
	for _, row := range rows {
		deposits = append(deposits, row.toEntity())
	}
	return deposits, nil
}

func (r *Repository) HasUnwithdrawnDeposits(ctx context.Context, applicationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&depositModel{}).
		Where("application_id = ? AND withdrawn = false", applicationID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("admission_repo_count_unwithdrawn_failed", err, "application_id", applicationID)
	}
	return count > 0, nil
}

func (r *Repository) GetSettings(ctx context.Context, kind entities.Kind) (entities.Settings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Settings{}, domainerrors.ErrSettingsNotFound
		}
		return entities.Settings{}, r.logError("admission_repo_get_settings_failed", err, "kind", string(kind))
	}
	return row.toEntity(), nil
}

func (r *Repository) PutSettings(ctx context.Context, settings entities.Settings) error {
	row := settingsModelFromEntity(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "kind"}},
		DoUpdates: clause.Assignments(map[string]any{
			"asset_address":    row.AssetAddress,
			"registry_address": row.RegistryAddress,
			"updated_at":       row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("admission_repo_put_settings_failed", err, "kind", string(settings.Kind))
	}
	return nil
}

func (r *Repository) AppendAnnotation(ctx context.Context, annotation entities.Annotation) error {
	// Per-application sequence numbers are assigned inside one transaction so
	// concurrent appends cannot collide.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&annotationModel{}).
			Where("application_id = ?", annotation.ApplicationID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).
			Error; err != nil {
			return err
		}
		row := annotationModelFromEntity(annotation)
		row.Seq = uint64(maxSeq) + 1
		return tx.Create(&row).Error
	})
	if err != nil {
		return r.logError("admission_repo_append_annotation_failed", err,
			"application_id", annotation.ApplicationID,
			"action", annotation.Action,
		)
	}
	return nil
}

func (r *Repository) ListAnnotations(ctx context.Context, applicationID string, afterSeq uint64, limit int) ([]entities.Annotation, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []annotationModel
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND seq > ?", applicationID, afterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_annotations_failed", err, "application_id", applicationID)
	}
	annotations := make([]entities.Annotation, 0, len(rows))
	for _, row := range rows {
		annotations = append(annotations, row.toEntity())
	}
	return annotations, nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, now.UTC()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("admission_repo_get_idempotency_failed", err, "key", key)
	}
	return ports.IdempotencyRecord{
		Key:             row.Key,
		Operation:       row.Operation,
		RequestHash:     row.RequestHash,
		ResponsePayload: row.ResponsePayload,
		ExpiresAt:       row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             record.Key,
		Operation:       record.Operation,
		RequestHash:     record.RequestHash,
		ResponsePayload: record.ResponsePayload,
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"operation":        row.Operation,
			"request_hash":     row.RequestHash,
			"response_payload": row.ResponsePayload,
			"expires_at":       row.ExpiresAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("admission_repo_put_idempotency_failed", err, "key", record.Key)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("admission_repo_append_outbox_failed", err,
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("admission_repo_list_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		}).
		Error
	if err != nil {
		return r.logError("admission_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "registry-governance/admission-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("admission repository operation failed", fields...)
	return err
}

type applicationModel struct {
	Kind                      string     `gorm:"column:kind;primaryKey"`
	Candidate                 string     `gorm:"column:candidate;primaryKey"`
	ApplicationID             string     `gorm:"column:application_id"`
	Applicant                 string     `gorm:"column:applicant"`
	TypeTag                   string     `gorm:"column:type_tag"`
	Title                     string     `gorm:"column:title"`
	DisplayTitle              string     `gorm:"column:display_title"`
	MetadataURI               string     `gorm:"column:metadata_uri"`
	CapabilityTags            []string   `gorm:"column:capability_tags;type:text[]"`
	Phase                     string     `gorm:"column:phase"`
	PhaseDeadline             *time.Time `gorm:"column:phase_deadline"`
	CumulativeSupportRequired uint64     `gorm:"column:cumulative_support_required"`
	RoundCount                int        `gorm:"column:round_count"`
	SubmissionFeePaid         uint64     `gorm:"column:submission_fee_paid"`
	CreatedAt                 time.Time  `gorm:"column:created_at"`
	UpdatedAt                 time.Time  `gorm:"column:updated_at"`
	ResolvedAt                *time.Time `gorm:"column:resolved_at"`
}

func (applicationModel) TableName() string {
	return "admission_applications"
}

func applicationModelFromEntity(item entities.Application) applicationModel {
	return applicationModel{
		Kind:                      string(item.Kind),
		Candidate:                 strings.TrimSpace(item.Candidate),
		ApplicationID:             strings.TrimSpace(item.ApplicationID),
		Applicant:                 strings.TrimSpace(item.Applicant),
		TypeTag:                   strings.TrimSpace(item.TypeTag),
		Title:                     strings.TrimSpace(item.Title),
		DisplayTitle:              strings.TrimSpace(item.DisplayTitle),
		MetadataURI:               strings.TrimSpace(item.MetadataURI),
		CapabilityTags:            copyOrEmpty(item.CapabilityTags),
		Phase:                     string(item.Phase),
		PhaseDeadline:             normalizeOptionalTime(item.PhaseDeadline),
		CumulativeSupportRequired: item.CumulativeSupportRequired,
		RoundCount:                item.RoundCount,
		SubmissionFeePaid:         item.SubmissionFeePaid,
		CreatedAt:                 item.CreatedAt.UTC(),
		UpdatedAt:                 item.UpdatedAt.UTC(),
		ResolvedAt:                normalizeOptionalTime(item.ResolvedAt),
	}
}

func applicationUpdatesFromEntity(item entities.Application) map[string]any {
	row := applicationModelFromEntity(item)
	return map[string]any{
		"application_id":              row.ApplicationID,
		"applicant":                   row.Applicant,
		"type_tag":                    row.TypeTag,
		"title":                       row.Title,
		"display_title":               row.DisplayTitle,
		"metadata_uri":                row.MetadataURI,
		"capability_tags":             row.CapabilityTags,
		"phase":                       row.Phase,
		"phase_deadline":              row.PhaseDeadline,
		"cumulative_support_required": row.CumulativeSupportRequired,
		"round_count":                 row.RoundCount,
		"submission_fee_paid":         row.SubmissionFeePaid,
		"updated_at":                  row.UpdatedAt,
		"resolved_at":                 row.ResolvedAt,
	}
}

func (m applicationModel) toEntity() entities.Application {
	return entities.Application{
		ApplicationID:             m.ApplicationID,
		Kind:                      entities.Kind(m.Kind),
		Candidate:                 m.Candidate,
		Applicant:                 m.Applicant,
		TypeTag:                   m.TypeTag,
		Title:                     m.Title,
		DisplayTitle:              m.DisplayTitle,
		MetadataURI:               m.MetadataURI,
		CapabilityTags:            copyOrEmpty(m.CapabilityTags),
		Phase:                     entities.Phase(m.Phase),
		PhaseDeadline:             normalizeOptionalTime(m.PhaseDeadline),
		CumulativeSupportRequired: m.CumulativeSupportRequired,
		RoundCount:                m.RoundCount,
		SubmissionFeePaid:         m.SubmissionFeePaid,
		CreatedAt:                 m.CreatedAt.UTC(),
		UpdatedAt:                 m.UpdatedAt.UTC(),
		ResolvedAt:                normalizeOptionalTime(m.ResolvedAt),
	}
}

type roundModel struct {
	ApplicationID   string    `gorm:"column:application_id;primaryKey"`
	RoundIndex      int       `gorm:"column:round_index;primaryKey"`
	SupportTotal    uint64    `gorm:"column:support_total"`
	OpposeTotal     uint64    `gorm:"column:oppose_total"`
	StartedAt       time.Time `gorm:"column:started_at"`
	EndsAt          time.Time `gorm:"column:ends_at"`
	Challenger      string    `gorm:"column:challenger"`
	ChallengerStake uint64    `gorm:"column:challenger_stake"`
	Resolved        bool      `gorm:"column:resolved"`
	SupportWon      bool      `gorm:"column:support_won"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (roundModel) TableName() string {
	return "admission_rounds"
}

func roundModelFromEntity(item entities.VoteRound) roundModel {
	return roundModel{
		ApplicationID:   strings.TrimSpace(item.ApplicationID),
		RoundIndex:      item.RoundIndex,
		SupportTotal:    item.SupportTotal,
		OpposeTotal:     item.OpposeTotal,
		StartedAt:       item.StartedAt.UTC(),
		EndsAt:          item.EndsAt.UTC(),
		Challenger:      strings.TrimSpace(item.Challenger),
		ChallengerStake: item.ChallengerStake,
		Resolved:        item.Resolved,
		SupportWon:      item.SupportWon,
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m roundModel) toEntity() entities.VoteRound {
	return entities.VoteRound{
		ApplicationID:   m.ApplicationID,
		RoundIndex:      m.RoundIndex,
		SupportTotal:    m.SupportTotal,
		OpposeTotal:     m.OpposeTotal,
		StartedAt:       m.StartedAt.UTC(),
		EndsAt:          m.EndsAt.UTC(),
		Challenger:      m.Challenger,
		ChallengerStake: m.ChallengerStake,
		Resolved:        m.Resolved,
		SupportWon:      m.SupportWon,
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type depositModel struct {
	ApplicationID string    `gorm:"column:application_id;primaryKey"`
	RoundIndex    int       `gorm:"column:round_index;primaryKey"`
	Participant   string    `gorm:"column:participant;primaryKey"`
	Side          string    `gorm:"column:side"`
	Amount        uint64    `gorm:"column:amount"`
	Withdrawn     bool      `gorm:"column:withdrawn"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (depositModel) TableName() string {
	return "admission_deposits"
}

func depositModelFromEntity(item entities.VoteDeposit) depositModel {
	return depositModel{
		ApplicationID: strings.TrimSpace(item.ApplicationID),
		RoundIndex:    item.RoundIndex,
		Participant:   strings.TrimSpace(item.Participant),
		Side:          string(item.Side),
		Amount:        item.Amount,
		Withdrawn:     item.Withdrawn,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m depositModel) toEntity() entities.VoteDeposit {
	return entities.VoteDeposit{
		ApplicationID: m.ApplicationID,
		Participant:   m.Participant,
		RoundIndex:    m.RoundIndex,
		Side:          entities.Side(m.Side),
		Amount:        m.Amount,
		Withdrawn:     m.Withdrawn,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type settingsModel struct {
	Kind            string    `gorm:"column:kind;primaryKey"`
	AssetAddress    string    `gorm:"column:asset_address"`
	RegistryAddress string    `gorm:"column:registry_address"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string {
	return "admission_track_settings"
}

func settingsModelFromEntity(item entities.Settings) settingsModel {
	return settingsModel{
		Kind:            string(item.Kind),
		AssetAddress:    strings.TrimSpace(item.AssetAddress),
		RegistryAddress: strings.TrimSpace(item.RegistryAddress),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m settingsModel) toEntity() entities.Settings {
	return entities.Settings{
		Kind:            entities.Kind(m.Kind),
		AssetAddress:    m.AssetAddress,
		RegistryAddress: m.RegistryAddress,
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type annotationModel struct {
	ApplicationID string    `gorm:"column:application_id;primaryKey"`
	Seq           uint64    `gorm:"column:seq;primaryKey"`
	Kind          string    `gorm:"column:kind"`
	Candidate     string    `gorm:"column:candidate"`
	RoundIndex    int       `gorm:"column:round_index"`
	Action        string    `gorm:"column:action"`
	Actor         string    `gorm:"column:actor"`
	Note          string    `gorm:"column:note"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (annotationModel) TableName() string {
	return "admission_annotations"
}

func annotationModelFromEntity(item entities.Annotation) annotationModel {
	return annotationModel{
		ApplicationID: strings.TrimSpace(item.ApplicationID),
		Seq:           item.Seq,
		Kind:          string(item.Kind),
		Candidate:     strings.TrimSpace(item.Candidate),
		RoundIndex:    item.RoundIndex,
		Action:        strings.TrimSpace(item.Action),
		Actor:         strings.TrimSpace(item.Actor),
		Note:          strings.TrimSpace(item.Note),
		CreatedAt:     item.CreatedAt.UTC(),
	}
}

func (m annotationModel) toEntity() entities.Annotation {
	return entities.Annotation{
		Seq:           m.Seq,
		ApplicationID: m.ApplicationID,
		Kind:          entities.Kind(m.Kind),
		Candidate:     m.Candidate,
		RoundIndex:    m.RoundIndex,
		Action:        m.Action,
		Actor:         m.Actor,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	Operation       string    `gorm:"column:operation"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "admission_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "admission_outbox"
}

func copyOrEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return append([]string(nil), items...)
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
