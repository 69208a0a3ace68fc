package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// PostService implements post CRUD and like toggling. Images are validated
// and written by the ImageStore before any document is touched.
type PostService struct {
	repo   ports.PostRepository
	images ports.ImageStore
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, images ports.ImageStore, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, images: images, logger: logger}
}

func (s *PostService) Create(ctx context.Context, input ports.PostInput, image *ports.ImageUpload) (*domain.Post, error) {
	if image == nil {
		return nil, domain.ErrImageRequired
	}

	filename, err := s.images.Save(*image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:       cleanInput(input.Title),
		Subtitle:    cleanInput(input.Subtitle),
		Description: cleanInput(input.Description),
		Content:     cleanInput(input.Content),
		Year:        cleanInput(input.Year),
		Image:       filename,
		Likes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		// don't orphan the file when the insert fails
		if rmErr := s.images.Remove(filename); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("image", filename).Msg("removing orphaned upload")
		}
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("title", created.Title).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id string, input ports.PostInput, image *ports.ImageUpload) (*domain.Post, error) {
	if image == nil {
		return nil, domain.ErrImageRequired
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	filename, err := s.images.Save(*image)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Title = cleanInput(input.Title)
	post.Subtitle = cleanInput(input.Subtitle)
	post.Description = cleanInput(input.Description)
	post.Content = cleanInput(input.Content)
	post.Year = cleanInput(input.Year)
	post.Image = filename
	post.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		if rmErr := s.images.Remove(filename); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("image", filename).Msg("removing orphaned upload")
		}
		return nil, err
	}

	if oldImage != "" && oldImage != filename {
		if err := s.images.Remove(oldImage); err != nil {
			s.logger.Warn().Err(err).Str("image", oldImage).Msg("removing replaced image")
		}
	}

	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if post.Image != "" {
		// best effort: the document is already gone
		if err := s.images.Remove(post.Image); err != nil {
			s.logger.Warn().Err(err).Str("image", post.Image).Msg("removing deleted post image")
		}
	}

	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

// ToggleLike flips the user's like on the post. The repository performs the
// flip atomically, so concurrent toggles never lose updates.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*ports.LikeResult, error) {
	liked, likes, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &ports.LikeResult{Liked: liked, Likes: likes}, nil
}
