package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository is the constructor for applicationRepository.
func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a pending application. The partial unique index on pending emails turns
// a concurrent duplicate into ErrApplicationDuplicatePending.
func (repo *applicationRepository) Create(ctx context.Context, app *entity.BusinessApplication) error {
	appM := fromApplicationDomain(app)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrApplicationDuplicatePending.WrapMessage("pending application exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create application")
	}

	app.ID = appM.ID
	app.CreatedAt = appM.CreatedAt
	app.UpdatedAt = appM.UpdatedAt

	return nil
}

func (repo *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BusinessApplication, error) {
	return repo.findByID(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate takes a row lock so concurrent approvals of the same application queue
// behind each other. Databases without row locks ignore the clause.
func (repo *applicationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BusinessApplication, error) {
	return repo.findByID(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (repo *applicationRepository) findByID(db *gorm.DB, id uuid.UUID) (*entity.BusinessApplication, error) {
	var appM model.BusinessApplicationModel
	if err := db.Where("id = ?", id).First(&appM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find application")
	}

	return toApplicationDomain(&appM), nil
}

// FindPendingByEmail reads from the primary so a just-submitted application is visible.
func (repo *applicationRepository) FindPendingByEmail(ctx context.Context, email string) (*entity.BusinessApplication, error) {
	var appM model.BusinessApplicationModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ? AND status = ?", email, string(entity.ApplicationStatusPending)).
		First(&appM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending application")
	}

	return toApplicationDomain(&appM), nil
}

// List returns applications newest first.
func (repo *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]*entity.BusinessApplication, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []model.BusinessApplicationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	apps := make([]*entity.BusinessApplication, 0, len(models))
	for i := range models {
		apps = append(apps, toApplicationDomain(&models[i]))
	}

	return apps, nil
}

// TransitionStatus is a compare-and-swap on the status column.
func (repo *applicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, transition repository.StatusTransition) error {
	values := map[string]any{
		"status":      string(transition.To),
		"reviewed_by": transition.ReviewedBy,
		"reviewed_at": transition.ReviewedAt,
	}
	if transition.RejectReason != nil {
		values["reject_reason"] = *transition.RejectReason
	}

	result := repo.db.WithContext(ctx).
		Model(&model.BusinessApplicationModel{}).
		Where("id = ? AND status = ?", id, string(transition.From)).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update application status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrApplicationStatusChanged
	}

	return nil
}

// DeleteTerminal hard-deletes a reviewed application.
func (repo *applicationRepository) DeleteTerminal(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, string(entity.ApplicationStatusPending)).
		Delete(&model.BusinessApplicationModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete application")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.BusinessApplicationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check application")
	}
	if count == 0 {
		return repository.ErrApplicationNotFound
	}

	return repository.ErrApplicationStatusChanged
}

func toApplicationDomain(data *model.BusinessApplicationModel) *entity.BusinessApplication {
	if data == nil {
		return nil
	}

	return &entity.BusinessApplication{
		ID:             data.ID,
		ApplicantName:  data.ApplicantName,
		Email:          data.Email,
		Phone:          data.Phone,
		StoreName:      data.StoreName,
		DesiredSlug:    data.DesiredSlug,
		CategoryID:     data.CategoryID,
		SubscriptionID: data.SubscriptionID,
		DocumentURLs:   []string(data.DocumentURLs),
		Status:         entity.ApplicationStatus(data.Status),
		ReviewedBy:     data.ReviewedBy,
		ReviewedAt:     data.ReviewedAt,
		RejectReason:   data.RejectReason,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromApplicationDomain(data *entity.BusinessApplication) *model.BusinessApplicationModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.ApplicationStatusPending
	}

	return &model.BusinessApplicationModel{
		ID:             data.ID,
		ApplicantName:  data.ApplicantName,
		Email:          data.Email,
		Phone:          data.Phone,
		StoreName:      data.StoreName,
		DesiredSlug:    data.DesiredSlug,
		CategoryID:     data.CategoryID,
		SubscriptionID: data.SubscriptionID,
		DocumentURLs:   datatypes.JSONSlice[string](data.DocumentURLs),
		Status:         string(status),
		ReviewedBy:     data.ReviewedBy,
		ReviewedAt:     data.ReviewedAt,
		RejectReason:   data.RejectReason,
	}
}
