package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Subtitle    string               `bson:"subtitle"`
	Description string               `bson:"description"`
	Content     string               `bson:"content"`
	Year        string               `bson:"year"`
	Image       string               `bson:"image"`
	Likes       []primitive.ObjectID `bson:"likes"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d postDoc) toDomain() *domain.Post {
	likes := make([]string, len(d.Likes))
	for i, id := range d.Likes {
		likes[i] = id.Hex()
	}
	return &domain.Post{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Description: d.Description,
		Content:     d.Content,
		Year:        d.Year,
		Image:       d.Image,
		Likes:       likes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		Title:       post.Title,
		Subtitle:    post.Subtitle,
		Description: post.Description,
		Content:     post.Content,
		Year:        post.Year,
		Image:       post.Image,
		Likes:       []primitive.ObjectID{},
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *doc.toDomain())
	}
	return posts, cur.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       post.Title,
		"subtitle":    post.Subtitle,
		"description": post.Description,
		"content":     post.Content,
		"year":        post.Year,
		"image":       post.Image,
		"updated_at":  post.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// ToggleLike flips the user's membership in the post's likes array in one
// atomic update, using an aggregation-pipeline $cond on set membership.
// Concurrent toggles on the same post therefore never lose updates, unlike
// a read-modify-write on the fetched document.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, 0, domain.ErrInvalidID
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, 0, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	likes := bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"likes": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{uid, likes}},
				bson.M{"$setDifference": bson.A{likes, bson.A{uid}}},
				bson.M{"$concatArrays": bson.A{likes, bson.A{uid}}},
			}},
			"updated_at": "$$NOW",
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": pid}, pipeline, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, 0, domain.ErrPostNotFound
		}
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}

	liked := false
	for _, id := range doc.Likes {
		if id == uid {
			liked = true
			break
		}
	}
	return liked, len(doc.Likes), nil
}
