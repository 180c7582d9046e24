package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on MongoDB. Users reference
// roles by name; roles are resolved against the roles collection on read.
type UserRepository struct {
	db    *mongo.Database
	col   *mongo.Collection
	roles *RoleRepository
}

func NewUserRepository(db *mongo.Database, roles *RoleRepository) *UserRepository {
	return &UserRepository{db: db, col: db.Collection(collectionUsers), roles: roles}
}

type userDoc struct {
	ID           int64     `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Enabled      bool      `bson:"enabled"`
	CreatedAt    time.Time `bson:"created_at"`
	Roles        []string  `bson:"roles"`
}

func toUserDoc(u *domain.User) userDoc {
	doc := userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Enabled:      u.Enabled,
		CreatedAt:    u.CreatedAt.UTC(),
		Roles:        make([]string, 0, len(u.Roles)),
	}
	for _, r := range u.Roles {
		doc.Roles = append(doc.Roles, string(r.Name))
	}
	return doc
}

func (d userDoc) toDomain(roles []domain.Role) *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Enabled:      d.Enabled,
		CreatedAt:    d.CreatedAt.UTC(),
		Roles:        roles,
	}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, storageErr("count users", err)
	}
	return n > 0, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}

	roles, err := r.roles.findMany(ctx, doc.Roles)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(roles), nil
}

// Save inserts user under a freshly allocated numeric ID. The unique email
// index turns a concurrent duplicate into domain.ErrEmailAlreadyExists.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionUsers)
	if err != nil {
		return nil, err
	}

	created := *user
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, toUserDoc(&created)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, storageErr("insert user", err)
	}
	return &created, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storageErr("list users", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode users", err)
	}

	// One roles query for the whole page.
	seen := make(map[string]struct{})
	var names []string
	for _, d := range docs {
		for _, n := range d.Roles {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				names = append(names, n)
			}
		}
	}
	roles, err := r.roles.findMany(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[domain.RoleName]domain.Role, len(roles))
	for _, role := range roles {
		byName[role.Name] = role
	}

	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		userRoles := make([]domain.Role, 0, len(d.Roles))
		for _, n := range d.Roles {
			if role, ok := byName[domain.RoleName(n)]; ok {
				userRoles = append(userRoles, role)
			}
		}
		out = append(out, d.toDomain(userRoles))
	}
	return out, nil
}
