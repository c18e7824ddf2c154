package app

import "errors"

var (
	ErrEmptyCategoryName     = errors.New("category name cannot be empty")
	ErrDuplicateCategoryName = errors.New("category with this name already exists")
	ErrCategoryIndex         = errors.New("invalid category index")
	ErrFeedNotInCategory     = errors.New("feed not found in category")
	ErrFeedIndex             = errors.New("invalid feed index")
	ErrDuplicateFeed         = errors.New("feed already loaded")
)
