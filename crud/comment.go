package crud

import (
	"strings"

	"gorm.io/gorm"

	"yatube/domain"
	"yatube/errs"
)

// CommentService manages Comments.
// It implements the domain.CommentService interface.
type CommentService struct {
	commentValidator
}

type commentValidator struct {
	commentGorm
}

type commentGorm struct {
	db *gorm.DB
}

// NewCommentService returns an instance of CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		commentValidator{
			commentGorm{
				db: db,
			},
		},
	}
}

var _ domain.CommentService = &CommentService{}

// Create runs validations needed for creating new Comment database records.
func (cv *commentValidator) Create(comment *domain.Comment) error {
	err := runCommentValFns(comment,
		cv.authorIDValid,
		cv.textRequired,
		cv.postExists)
	if err != nil {
		return err
	}
	return cv.commentGorm.Create(comment)
}

func runCommentValFns(comment *domain.Comment, fns ...commentValFn) error {
	for _, fn := range fns {
		if err := fn(comment); err != nil {
			return err
		}
	}
	return nil
}

type commentValFn = func(comment *domain.Comment) error

func (cv *commentValidator) authorIDValid(comment *domain.Comment) error {
	if comment.AuthorID <= 0 {
		return errs.Errorf(errs.EINVALID, "Comment author is required.")
	}
	return nil
}

func (cv *commentValidator) textRequired(comment *domain.Comment) error {
	if strings.TrimSpace(comment.Text) == "" {
		return errs.Errorf(errs.EINVALID, "Comment text must not be empty.")
	}
	return nil
}

// postExists makes sure that the commented post actually exists.
func (cv *commentValidator) postExists(comment *domain.Comment) error {
	err := cv.db.First(&domain.Post{}, "id = ?", comment.PostID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The commented post does not exist.")
		}
		return err
	}
	return nil
}

// ByPost retrieves all comments of a post, newest first.
func (cg *commentGorm) ByPost(postID int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := cg.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at desc, id desc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create stores the data from the Comment object in a new database record.
func (cg *commentGorm) Create(comment *domain.Comment) error {
	if err := cg.db.Create(comment).Error; err != nil {
		return err
	}
	return cg.db.Preload("Author").First(comment).Error
}
