package mongo

import (
	"context"
	"errors"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// RoleRepository stores each role as one document with its permission names
// embedded, which stands in for the role_permissions join table.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleDoc struct {
	Name        string   `bson:"name"`
	Permissions []string `bson:"permissions"`
}

func (d roleDoc) toDomain() domain.Role {
	role := domain.Role{Name: domain.RoleName(d.Name)}
	for _, p := range d.Permissions {
		role.Permissions = append(role.Permissions, domain.Permission{Name: domain.PermissionName(p)})
	}
	return role
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	if err := r.col.FindOne(ctx, bson.M{"name": string(name)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, storageErr("find role", err)
	}
	role := doc.toDomain()
	return &role, nil
}

// findMany resolves a set of role names in one query. Unknown names are skipped.
func (r *RoleRepository) findMany(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, storageErr("find roles", err)
	}
	var docs []roleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode roles", err)
	}
	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, d.toDomain())
	}
	return roles, nil
}

// Seed upserts every role with exactly the given permissions.
func (r *RoleRepository) Seed(ctx context.Context, grants map[domain.RoleName][]domain.PermissionName) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	names := make([]domain.RoleName, 0, len(grants))
	for name := range grants {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		perms := make([]string, 0, len(grants[name]))
		for _, p := range grants[name] {
			perms = append(perms, string(p))
		}
		_, err := r.col.UpdateOne(ctx,
			bson.M{"name": string(name)},
			bson.M{"$set": bson.M{"permissions": perms}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return storageErr("seed role "+string(name), err)
		}
	}
	return nil
}
