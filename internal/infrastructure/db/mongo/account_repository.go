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

	"github.com/salonms/backend/internal/core/domain"
)

// Collection names per role namespace. The legacy deployment keeps each
// principal kind in its own collection; uniqueness of email is therefore
// per role, not global.
var roleCollections = map[domain.Role]string{
	domain.RoleAdmin:     "admins",
	domain.RoleStaff:     "staff",
	domain.RoleReception: "reception",
}

// AccountRepository persists accounts for one role namespace.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database, role domain.Role) (*AccountRepository, error) {
	name, ok := roleCollections[role]
	if !ok {
		return nil, fmt.Errorf("no collection for role %q", role)
	}
	return &AccountRepository{coll: db.Collection(name)}, nil
}

// EnsureIndexes creates the unique email index duplicate detection relies on.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// accountDoc is the stored shape. Status is raw text here: legacy records
// carry values like "Pending Activation", so normalization happens once,
// at decode time.
type accountDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	Role           string             `bson:"role"`
	Status         string             `bson:"status"`
	Name           string             `bson:"name,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	Specialization string             `bson:"specialization,omitempty"`
	Shift          string             `bson:"shift,omitempty"`
	CredentialHash string             `bson:"password_hash,omitempty"`
	HasActivated   bool               `bson:"has_activated"`
	ActivatedAt    *time.Time         `bson:"activated_at,omitempty"`
	LastLoginAt    *time.Time         `bson:"last_login,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func toDoc(a *domain.Account) *accountDoc {
	return &accountDoc{
		Email:          a.Email,
		Role:           string(a.Role),
		Status:         string(a.Status),
		Name:           a.Profile.Name,
		Phone:          a.Profile.Phone,
		Specialization: a.Profile.Specialization,
		Shift:          a.Profile.Shift,
		CredentialHash: a.CredentialHash,
		HasActivated:   a.HasActivated,
		ActivatedAt:    a.ActivatedAt,
		LastLoginAt:    a.LastLoginAt,
		CreatedAt:      a.CreatedAt.Unix(),
		UpdatedAt:      a.UpdatedAt.Unix(),
	}
}

func (d *accountDoc) toDomain() (*domain.Account, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("account %s: status %q: %w", d.ID.Hex(), d.Status, err)
	}
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return nil, fmt.Errorf("account %s: role %q: %w", d.ID.Hex(), d.Role, err)
	}
	return &domain.Account{
		ID:     d.ID.Hex(),
		Email:  d.Email,
		Role:   role,
		Status: status,
		Profile: domain.Profile{
			Name:           d.Name,
			Phone:          d.Phone,
			Specialization: d.Specialization,
			Shift:          d.Shift,
		},
		CredentialHash: d.CredentialHash,
		HasActivated:   d.HasActivated,
		ActivatedAt:    d.ActivatedAt,
		LastLoginAt:    d.LastLoginAt,
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain()
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain()
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := toDoc(account)

	if account.ID == "" {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateAccount
			}
			return nil, fmt.Errorf("insert account: %w", err)
		}
		oid, _ := res.InsertedID.(primitive.ObjectID)
		return r.FindByID(ctx, oid.Hex())
	}

	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("replace account: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.FindByID(ctx, account.ID)
}

// Activate performs the first-login credential set as a compare-and-set on
// has_activated. Two racing first logins both reach this call; the filter
// guarantees only one matches, and the loser surfaces as a credential
// failure rather than overwriting the winner's password.
func (r *AccountRepository) Activate(ctx context.Context, id, credentialHash string, at time.Time) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "has_activated": false},
		bson.M{"$set": bson.M{
			"password_hash": credentialHash,
			"has_activated": true,
			"status":        string(domain.StatusActive),
			"activated_at":  at,
			"last_login":    at,
			"updated_at":    at.Unix(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("activate account: %w", err)
	}
	return doc.toDomain()
}

func (r *AccountRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
