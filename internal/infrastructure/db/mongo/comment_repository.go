package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PostID    primitive.ObjectID `bson:"post_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
}

// commentItemDoc is the $lookup-joined shape produced by ListByPost.
type commentItemDoc struct {
	commentDoc    `bson:",inline"`
	AuthorName    string `bson:"author_name"`
	AuthorSurname string `bson:"author_surname"`
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	pid, err := primitive.ObjectIDFromHex(comment.PostID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	uid, err := primitive.ObjectIDFromHex(comment.UserID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := commentDoc{
		PostID:    pid,
		UserID:    uid,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// ListByPost returns the post's comments newest first, each joined with the
// commenter's name and surname from the users collection.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]ports.CommentItem, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post_id": pid}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$author",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$set", Value: bson.M{
			"author_name":    "$author.name",
			"author_surname": "$author.surname",
		}}},
		{{Key: "$unset", Value: "author"}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	items := []ports.CommentItem{}
	for cur.Next(ctx) {
		var doc commentItemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		items = append(items, ports.CommentItem{
			ID:            doc.ID.Hex(),
			PostID:        doc.PostID.Hex(),
			UserID:        doc.UserID.Hex(),
			Comment:       doc.Comment,
			AuthorName:    doc.AuthorName,
			AuthorSurname: doc.AuthorSurname,
			CreatedAt:     doc.CreatedAt,
		})
	}
	return items, cur.Err()
}

// EnsureIndexes creates the compound index backing newest-first listing per
// post.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
