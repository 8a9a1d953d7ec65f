package crud

import (
	"strings"

	"gorm.io/gorm"

	"yatube/domain"
	"yatube/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.authorIDValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations needed for updating existing Post database records.
func (pv *postValidator) Update(post *domain.Post) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.authorIDValid,
		pv.textRequired,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn = func(post *domain.Post) error

// authorIDValid makes sure that the post carries the ID of its owning author.
func (pv *postValidator) authorIDValid(post *domain.Post) error {
	if post.AuthorID <= 0 {
		return errs.Errorf(errs.EINVALID, "Post author is required.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Post to be updated is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid post id.")
	}
	return nil
}

// textRequired makes sure that the Post's text is not empty.
func (pv *postValidator) textRequired(post *domain.Post) error {
	if strings.TrimSpace(post.Text) == "" {
		return errs.Errorf(errs.EINVALID, "Post text must not be empty.")
	}
	return nil
}

// groupExists makes sure that the selected Group actually exists.
// This check only runs if the incoming Post object references a group.
func (pv *postValidator) groupExists(post *domain.Post) error {
	if post.GroupID == nil {
		return nil
	}
	err := pv.db.First(&domain.Group{}, "id = ?", *post.GroupID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.EINVALID, "The selected group does not exist.")
		}
		return err
	}
	return nil
}

// ByID retrieves a single Post by ID, along with its author and group.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// All retrieves the page window of all posts, newest first.
func (pg *postGorm) All(page int) ([]domain.Post, domain.Page, error) {
	return pg.paginate(func(db *gorm.DB) *gorm.DB {
		return db
	}, page)
}

// ByGroup retrieves the page window of the posts belonging to a group, newest first.
func (pg *postGorm) ByGroup(groupID, page int) ([]domain.Post, domain.Page, error) {
	return pg.paginate(func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	}, page)
}

// ByAuthor retrieves the page window of the posts written by an author, newest first.
func (pg *postGorm) ByAuthor(authorID, page int) ([]domain.Post, domain.Page, error) {
	return pg.paginate(func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	}, page)
}

// Feed retrieves the page window of the posts written by the authors that
// the given user follows, newest first.
func (pg *postGorm) Feed(userID, page int) ([]domain.Post, domain.Page, error) {
	return pg.paginate(func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN follows ON follows.author_id = posts.author_id").
			Where("follows.user_id = ?", userID)
	}, page)
}

// paginate counts the rows the filtered query would return, selects the
// page window for the requested page number, and loads exactly that window.
// The filter runs on a fresh statement for the count and for the select, so
// the two cannot contaminate each other.
func (pg *postGorm) paginate(filter func(*gorm.DB) *gorm.DB, requested int) ([]domain.Post, domain.Page, error) {
	var total int64
	if err := filter(pg.db.Model(&domain.Post{})).Count(&total).Error; err != nil {
		return nil, domain.Page{}, err
	}
	page := domain.PageOf(int(total), requested)
	var posts []domain.Post
	err := filter(pg.db.Model(&domain.Post{})).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at desc, posts.id desc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, domain.Page{}, err
	}
	return posts, page, nil
}

// Create stores the data from the Post object in a new database record.
func (pg *postGorm) Create(post *domain.Post) error {
	if err := pg.db.Create(post).Error; err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post).Error
}

// Update saves changes to an existing post record in the database.
// The creation timestamp is left untouched.
func (pg *postGorm) Update(post *domain.Post) error {
	err := pg.db.Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post, "id = ?", post.ID).Error
}
