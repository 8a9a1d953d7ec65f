package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/domain"
	"yatube/errs"
)

// FollowService manages Follow edges.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

type followValidator struct {
	followGorm
}

type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
// Following yourself is a silent no-op, no edge is created and no error
// is returned.
func (fv *followValidator) Create(follow *domain.Follow) error {
	if follow.UserID == follow.AuthorID {
		return nil
	}
	err := runFollowValFns(follow,
		fv.userIDValid,
		fv.followedAuthorExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete runs validations needed for deleting existing Follow database records.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.userIDValid)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

type followValFn = func(follow *domain.Follow) error

func (fv *followValidator) userIDValid(follow *domain.Follow) error {
	if follow.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "Follower is required.")
	}
	return nil
}

func (fv *followValidator) followedAuthorExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.AuthorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The author to be followed does not exist.")
		}
		return err
	}
	return nil
}

// Create inserts the edge if it is absent. The insert and the existence
// check are a single statement, backed by the unique index on
// (user_id, author_id), so two concurrent identical follow requests can
// never produce a duplicate edge.
func (fg *followGorm) Create(follow *domain.Follow) error {
	err := fg.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
	if err != nil {
		return err
	}
	return fg.db.Preload("User").Preload("Author").
		First(follow, "user_id = ? AND author_id = ?", follow.UserID, follow.AuthorID).Error
}

// Delete removes the edge between the user and the author. Deleting an
// edge that does not exist is not an error.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("user_id = ? AND author_id = ?", follow.UserID, follow.AuthorID).
		Delete(&domain.Follow{}).Error
}

// Exists reports whether the user already follows the author.
func (fg *followGorm) Exists(userID, authorID int) (bool, error) {
	var count int64
	err := fg.db.Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
