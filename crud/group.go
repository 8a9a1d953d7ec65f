package crud

import (
	"regexp"
	"strings"

	"gorm.io/gorm"

	"yatube/domain"
	"yatube/errs"
)

// GroupService manages Groups. Groups have no http write surface, they are
// created out-of-band (seed command, operations tooling).
// It implements the domain.GroupService interface.
type GroupService struct {
	groupValidator
}

type groupValidator struct {
	slugRegex *regexp.Regexp
	groupGorm
}

type groupGorm struct {
	db *gorm.DB
}

// NewGroupService returns an instance of GroupService.
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		groupValidator{
			slugRegex: regexp.MustCompile(`^[-a-zA-Z0-9_]+$`),
			groupGorm: groupGorm{
				db: db,
			},
		},
	}
}

var _ domain.GroupService = &GroupService{}

// Create runs validations needed for creating new Group database records.
func (gv *groupValidator) Create(group *domain.Group) error {
	err := runGroupValFns(group,
		gv.titleRequired,
		gv.slugNormalize,
		gv.slugRequired,
		gv.slugFormat,
		gv.slugIsAvail)
	if err != nil {
		return err
	}
	return gv.groupGorm.Create(group)
}

func runGroupValFns(group *domain.Group, fns ...groupValFn) error {
	for _, fn := range fns {
		if err := fn(group); err != nil {
			return err
		}
	}
	return nil
}

type groupValFn = func(group *domain.Group) error

func (gv *groupValidator) titleRequired(group *domain.Group) error {
	if strings.TrimSpace(group.Title) == "" {
		return errs.Errorf(errs.EINVALID, "Group title must not be empty.")
	}
	return nil
}

func (gv *groupValidator) slugNormalize(group *domain.Group) error {
	group.Slug = strings.ToLower(strings.TrimSpace(group.Slug))
	return nil
}

func (gv *groupValidator) slugRequired(group *domain.Group) error {
	if group.Slug == "" {
		return errs.Errorf(errs.EINVALID, "Group slug must not be empty.")
	}
	return nil
}

// slugFormat makes sure the slug only contains characters that are safe in URLs.
func (gv *groupValidator) slugFormat(group *domain.Group) error {
	if !gv.slugRegex.MatchString(group.Slug) {
		return errs.Errorf(errs.EINVALID, "Group slug may only contain letters, numbers, hyphens and underscores.")
	}
	return nil
}

func (gv *groupValidator) slugIsAvail(group *domain.Group) error {
	var existing domain.Group
	err := gv.db.First(&existing, "slug = ?", group.Slug).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != group.ID {
		return errs.Errorf(errs.EINVALID, "This group slug is already taken.")
	}
	return nil
}

// BySlug retrieves a single Group by its URL slug.
func (gg *groupGorm) BySlug(slug string) (*domain.Group, error) {
	var group domain.Group
	err := gg.db.First(&group, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The group does not exist.")
		}
		return nil, err
	}
	return &group, nil
}

// All retrieves all groups, ordered by title. The create form uses this to
// offer the group selection.
func (gg *groupGorm) All() ([]domain.Group, error) {
	var groups []domain.Group
	err := gg.db.Order("title asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Create stores the data from the Group object in a new database record.
func (gg *groupGorm) Create(group *domain.Group) error {
	return gg.db.Create(group).Error
}
