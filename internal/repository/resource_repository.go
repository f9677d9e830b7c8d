package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository/common"
)

// Ошибки ресурсного репозитория.
var (
	ErrResourceNotFound     = errors.New("resource not found")
	ErrResourceNotAvailable = errors.New("resource not available")
	ErrNotOwner             = errors.New("caller is not the owner")
)

// SweepEvent описывает инвариантное действие, выполненное ленивой проверкой
// сроков внутри той же транзакции, что и чтение/переход. Репозиторий
// возвращает событие наружу, уведомления по нему рассылает сервисный слой
// уже после коммита.
type SweepEvent struct {
	ResourceID    uuid.UUID
	ExpiredHolder *uuid.UUID // бронь снята по сроку: бывший держатель
	WarnOwner     *uuid.UUID // объявление скоро истечёт: владелец
}

// ResourceRepository отвечает за хранение ресурсов и их переходы.
// Единица взаимного исключения — строка ресурса: каждый переход и каждое
// чтение по id захватывают её через SELECT ... FOR UPDATE, поэтому два
// конкурентных перехода по одному id сериализуются базой.
type ResourceRepository struct {
	db         *sqlx.DB
	warnWindow time.Duration
}

// NewResourceRepository создаёт экземпляр репозитория.
func NewResourceRepository(db *sqlx.DB, warnWindow time.Duration) *ResourceRepository {
	return &ResourceRepository{db: db, warnWindow: warnWindow}
}

// Create сохраняет ресурс и его медиа в одной транзакции.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO resources (owner_id, category, tags, description, quantity, location, latitude, longitude, status, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`

		if err := tx.QueryRowxContext(
			ctx,
			query,
			res.OwnerID,
			res.Category,
			res.Tags,
			res.Description,
			res.Quantity,
			res.Location,
			res.Latitude,
			res.Longitude,
			models.ResourceStatusAvailable,
			res.ExpiresAt,
		).Scan(&res.ID, &res.CreatedAt); err != nil {
			return fmt.Errorf("resource repository: insert resource %w", err)
		}
		res.Status = models.ResourceStatusAvailable

		if len(res.Media) == 0 {
			return nil
		}

		// Batch INSERT для медиа (устранение N+1)
		mediaQuery := `INSERT INTO resource_media (resource_id, url, content_type, description, position) VALUES `
		mediaValues := make([]interface{}, 0, len(res.Media)*5)

		for i := range res.Media {
			if i > 0 {
				mediaQuery += ", "
			}
			mediaQuery += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)
			mediaValues = append(mediaValues, res.ID, res.Media[i].URL, res.Media[i].ContentType, res.Media[i].Description, i)
			res.Media[i].ResourceID = res.ID
			res.Media[i].Position = i
		}

		if _, err := tx.ExecContext(ctx, mediaQuery, mediaValues...); err != nil {
			return fmt.Errorf("resource repository: batch insert media %w", err)
		}

		return nil
	})
}

// GetByID возвращает ресурс, предварительно применив ленивую проверку сроков
// под блокировкой строки.
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, *SweepEvent, error) {
	var res *models.Resource
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = lockResource(ctx, tx, id)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, res, time.Now())
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if err := r.attachMedia(ctx, []*models.Resource{res}); err != nil {
		return nil, nil, err
	}

	return res, event, nil
}

// ListAvailable возвращает доступные и не истёкшие ресурсы.
// Просроченные брони показываются как доступные без мутации строк:
// физическое снятие брони произойдёт при ближайшем обращении по id.
func (r *ResourceRepository) ListAvailable(ctx context.Context) ([]models.Resource, error) {
	return r.listObservable(ctx, "", nil)
}

// SearchByTags возвращает доступные ресурсы, пересекающиеся с тегами запроса.
func (r *ResourceRepository) SearchByTags(ctx context.Context, tags []string) ([]models.Resource, error) {
	return r.listObservable(ctx, " AND tags && $2", pq.Array(tags))
}

func (r *ResourceRepository) listObservable(ctx context.Context, extraCond string, extraArg interface{}) ([]models.Resource, error) {
	now := time.Now()
	query := `
		SELECT * FROM resources
		WHERE expires_at > $1
		  AND (status = 'available' OR (status = 'reserved' AND reservation_expiry <= $1))
	`
	args := []interface{}{now}
	if extraCond != "" {
		query += extraCond
		args = append(args, extraArg)
	}
	query += " ORDER BY created_at DESC"

	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources, query, args...); err != nil {
		return nil, fmt.Errorf("resource repository: list %w", err)
	}

	refs := make([]*models.Resource, 0, len(resources))
	for i := range resources {
		normalizeExpiredReservation(&resources[i], now)
		refs = append(refs, &resources[i])
	}
	if err := r.attachMedia(ctx, refs); err != nil {
		return nil, err
	}

	return resources, nil
}

// ListByOwner возвращает все ресурсы владельца независимо от статуса.
func (r *ResourceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Resource, error) {
	now := time.Now()
	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources,
		`SELECT * FROM resources WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID); err != nil {
		return nil, fmt.Errorf("resource repository: list by owner %w", err)
	}

	refs := make([]*models.Resource, 0, len(resources))
	for i := range resources {
		normalizeExpiredReservation(&resources[i], now)
		refs = append(refs, &resources[i])
	}
	if err := r.attachMedia(ctx, refs); err != nil {
		return nil, err
	}

	return resources, nil
}

// Update изменяет редактируемые поля ресурса. Разрешено только владельцу и
// только пока ресурс доступен.
func (r *ResourceRepository) Update(ctx context.Context, res *models.Resource, caller uuid.UUID) (*SweepEvent, error) {
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		locked, err := lockResource(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, locked, time.Now())
		if err != nil {
			return err
		}

		if locked.OwnerID != caller {
			return ErrNotOwner
		}
		if locked.Status != models.ResourceStatusAvailable {
			return ErrResourceNotAvailable
		}

		query := `
			UPDATE resources
			SET category = $1,
			    tags = $2,
			    description = $3,
			    quantity = $4,
			    location = $5,
			    latitude = $6,
			    longitude = $7
			WHERE id = $8
		`
		if _, err := tx.ExecContext(
			ctx,
			query,
			res.Category,
			res.Tags,
			res.Description,
			res.Quantity,
			res.Location,
			res.Latitude,
			res.Longitude,
			res.ID,
		); err != nil {
			return fmt.Errorf("resource repository: update resource %w", err)
		}

		res.OwnerID = locked.OwnerID
		res.Status = locked.Status
		res.CreatedAt = locked.CreatedAt
		res.ExpiresAt = locked.ExpiresAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Delete удаляет ресурс владельца, пока тот доступен.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*SweepEvent, error) {
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		locked, err := lockResource(ctx, tx, id)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, locked, time.Now())
		if err != nil {
			return err
		}

		if locked.OwnerID != caller {
			return ErrNotOwner
		}
		if locked.Status != models.ResourceStatusAvailable {
			return ErrResourceNotAvailable
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id); err != nil {
			return fmt.Errorf("resource repository: delete resource %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// AddMedia добавляет элемент в конец списка медиа. Запрещено для ресурсов в
// терминальном статусе claimed.
func (r *ResourceRepository) AddMedia(ctx context.Context, resourceID uuid.UUID, item *models.MediaItem) (*SweepEvent, error) {
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		locked, err := lockResource(ctx, tx, resourceID)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, locked, time.Now())
		if err != nil {
			return err
		}

		if locked.Status == models.ResourceStatusClaimed {
			return ErrResourceNotAvailable
		}

		query := `
			INSERT INTO resource_media (resource_id, url, content_type, description, position)
			VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position) + 1, 0) FROM resource_media WHERE resource_id = $1))
			RETURNING id, position, created_at
		`
		if err := tx.QueryRowxContext(ctx, query, resourceID, item.URL, item.ContentType, item.Description).
			Scan(&item.ID, &item.Position, &item.CreatedAt); err != nil {
			return fmt.Errorf("resource repository: insert media %w", err)
		}
		item.ResourceID = resourceID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Reserve переводит доступный ресурс в состояние reserved.
func (r *ResourceRepository) Reserve(ctx context.Context, id uuid.UUID, caller uuid.UUID, expiry time.Time) (*models.Resource, *SweepEvent, error) {
	var res *models.Resource
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = lockResource(ctx, tx, id)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, res, time.Now())
		if err != nil {
			return err
		}

		if res.Status != models.ResourceStatusAvailable {
			return ErrResourceNotAvailable
		}

		query := `
			UPDATE resources
			SET status = 'reserved', reserved_by = $1, reservation_expiry = $2
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, query, caller, expiry, id); err != nil {
			return fmt.Errorf("resource repository: reserve %w", err)
		}

		res.Status = models.ResourceStatusReserved
		res.ReservedBy = &caller
		res.ReservationExpiry = &expiry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res, event, nil
}

// Claim переводит ресурс в терминальное состояние claimed и в той же
// транзакции увеличивает счётчики сделок владельца и получателя.
// Разрешено из available либо из reserved тем же держателем брони.
func (r *ResourceRepository) Claim(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*models.Resource, *SweepEvent, error) {
	var res *models.Resource
	var event *SweepEvent

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = lockResource(ctx, tx, id)
		if err != nil {
			return err
		}
		event, err = r.sweepLocked(ctx, tx, res, time.Now())
		if err != nil {
			return err
		}

		if !canClaim(res, caller) {
			return ErrResourceNotAvailable
		}

		query := `
			UPDATE resources
			SET status = 'claimed', claimed_by = $1, reserved_by = NULL, reservation_expiry = NULL
			WHERE id = $2
		`
		if _, err := tx.ExecContext(ctx, query, caller, id); err != nil {
			return fmt.Errorf("resource repository: claim %w", err)
		}

		// Профили могут отсутствовать (участник не заполнял профиль либо
		// удалил его) — тогда счётчик просто не к кому применять.
		participants := []uuid.UUID{res.OwnerID, caller}
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET total_transactions = total_transactions + 1, updated_at = NOW() WHERE principal = ANY($1)`,
			pq.Array(participants)); err != nil {
			return fmt.Errorf("resource repository: bump transactions %w", err)
		}

		res.Status = models.ResourceStatusClaimed
		res.ClaimedBy = &caller
		res.ReservedBy = nil
		res.ReservationExpiry = nil
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res, event, nil
}

// lockResource читает строку ресурса под FOR UPDATE.
func lockResource(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Resource, error) {
	var res models.Resource
	if err := tx.GetContext(ctx, &res, `SELECT * FROM resources WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("resource repository: lock %w", err)
	}
	return &res, nil
}

// reservationExpired сообщает, истекла ли бронь к моменту now.
// Граница включительно: в момент now == reservationExpiry бронь уже снята.
func reservationExpired(res *models.Resource, now time.Time) bool {
	return res.Status == models.ResourceStatusReserved &&
		res.ReservationExpiry != nil && !now.Before(*res.ReservationExpiry)
}

// expiryWarningDue сообщает, пора ли один раз предупредить владельца о
// скором истечении объявления.
func expiryWarningDue(res *models.Resource, warnWindow time.Duration, now time.Time) bool {
	return warnWindow > 0 && res.Status != models.ResourceStatusClaimed && !res.ExpiryWarned &&
		now.Before(res.ExpiresAt) && now.Add(warnWindow).After(res.ExpiresAt)
}

// canClaim сообщает, разрешена ли передача ресурса вызывающему: из available
// кому угодно, из reserved — только держателю брони. Просроченная бронь к
// этому моменту уже снята ленивой проверкой.
func canClaim(res *models.Resource, caller uuid.UUID) bool {
	if res.Status == models.ResourceStatusAvailable {
		return true
	}
	return res.Status == models.ResourceStatusReserved &&
		res.ReservedBy != nil && *res.ReservedBy == caller
}

// sweepLocked применяет ленивую проверку сроков к заблокированной строке:
// снимает просроченную бронь и один раз помечает скорое истечение объявления.
func (r *ResourceRepository) sweepLocked(ctx context.Context, tx *sqlx.Tx, res *models.Resource, now time.Time) (*SweepEvent, error) {
	event := &SweepEvent{ResourceID: res.ID}
	changed := false

	if reservationExpired(res, now) {
		holder := *res.ReservedBy
		if _, err := tx.ExecContext(ctx,
			`UPDATE resources SET status = 'available', reserved_by = NULL, reservation_expiry = NULL WHERE id = $1`,
			res.ID); err != nil {
			return nil, fmt.Errorf("resource repository: sweep reservation %w", err)
		}
		res.Status = models.ResourceStatusAvailable
		res.ReservedBy = nil
		res.ReservationExpiry = nil
		event.ExpiredHolder = &holder
		changed = true
	}

	if expiryWarningDue(res, r.warnWindow, now) {
		if _, err := tx.ExecContext(ctx,
			`UPDATE resources SET expiry_warned = TRUE WHERE id = $1`, res.ID); err != nil {
			return nil, fmt.Errorf("resource repository: sweep expiry warn %w", err)
		}
		res.ExpiryWarned = true
		owner := res.OwnerID
		event.WarnOwner = &owner
		changed = true
	}

	if !changed {
		return nil, nil
	}
	return event, nil
}

// normalizeExpiredReservation показывает просроченную бронь как снятую,
// не трогая строку в базе.
func normalizeExpiredReservation(res *models.Resource, now time.Time) {
	if reservationExpired(res, now) {
		res.Status = models.ResourceStatusAvailable
		res.ReservedBy = nil
		res.ReservationExpiry = nil
	}
}

// attachMedia загружает упорядоченные медиа для набора ресурсов одним запросом.
func (r *ResourceRepository) attachMedia(ctx context.Context, resources []*models.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(resources))
	byID := make(map[uuid.UUID]*models.Resource, len(resources))
	for _, res := range resources {
		ids = append(ids, res.ID)
		byID[res.ID] = res
		res.Media = []models.MediaItem{}
	}

	var items []models.MediaItem
	if err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM resource_media WHERE resource_id = ANY($1) ORDER BY resource_id, position`,
		pq.Array(ids)); err != nil {
		return fmt.Errorf("resource repository: load media %w", err)
	}

	for _, item := range items {
		if res, ok := byID[item.ResourceID]; ok {
			res.Media = append(res.Media, item)
		}
	}
	return nil
}
