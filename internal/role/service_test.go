package role_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	"github.com/cloudmorphix/console/internal/role"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Service Suite")
}

// Mock role repository for testing
type mockRoleRepo struct {
	roles       []*roleDatamodel.Role
	createError error
}

func (m *mockRoleRepo) Create(r *roleDatamodel.Role) error {
	if m.createError != nil {
		return m.createError
	}
	m.roles = append(m.roles, r)
	return nil
}

func (m *mockRoleRepo) GetByName(companyID, name string) (*roleDatamodel.Role, error) {
	for _, r := range m.roles {
		if r.CompanyID == companyID && r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRoleRepo) NameExists(companyID, name string) (bool, error) {
	for _, r := range m.roles {
		if r.CompanyID == companyID && strings.EqualFold(r.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRoleRepo) ListByCompany(companyID string) ([]*roleDatamodel.Role, error) {
	out := make([]*roleDatamodel.Role, 0)
	for _, r := range m.roles {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

var _ = Describe("RoleService", func() {
	var (
		service  *role.Service
		mockRepo *mockRoleRepo
		ctx      context.Context
		actor    *auth.AccessProfile
	)

	BeforeEach(func() {
		mockRepo = &mockRoleRepo{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = role.NewService(mockRepo, nil, logger)
		ctx = context.Background()
		actor = &auth.AccessProfile{UserID: "admin-1", FullName: "Alice", Email: "alice@acme.test"}

		mockRepo.roles = role.Defaults("company-1")
	})

	Describe("Create", func() {
		It("should create a role with valid permission flags", func() {
			created, err := service.Create(ctx, "company-1", role.CreateRoleDTO{
				Name:        "Auditor",
				Permissions: []string{auth.PermViewDashboard},
			}, actor)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("Auditor"))
			Expect(created.CompanyID).To(Equal("company-1"))
			Expect(created.Permissions).To(ConsistOf(auth.PermViewDashboard))
		})

		It("should reject a case-insensitive duplicate of an existing role", func() {
			before, _ := mockRepo.ListByCompany("company-1")

			_, err := service.Create(ctx, "company-1", role.CreateRoleDTO{
				Name:        "admin",
				Permissions: []string{auth.PermViewDashboard},
			}, actor)
			Expect(err).To(MatchError(internal.ErrDuplicateRole))

			after, _ := mockRepo.ListByCompany("company-1")
			Expect(after).To(HaveLen(len(before)))
		})

		It("should reject a duplicate in mixed case", func() {
			_, err := service.Create(ctx, "company-1", role.CreateRoleDTO{Name: "VIEWER"}, actor)
			Expect(internal.IsConflict(err)).To(BeTrue())
		})

		It("should allow the same name in another company", func() {
			_, err := service.Create(ctx, "company-2", role.CreateRoleDTO{Name: "Viewer"}, actor)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject unknown permission flags", func() {
			_, err := service.Create(ctx, "company-1", role.CreateRoleDTO{
				Name:        "Superuser",
				Permissions: []string{"launch_missiles"},
			}, actor)
			Expect(err).To(HaveOccurred())
		})

		It("should reject a blank name", func() {
			_, err := service.Create(ctx, "company-1", role.CreateRoleDTO{Name: "   "}, actor)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Defaults", func() {
		It("should seed Admin with every permission flag", func() {
			defaults := role.Defaults("company-9")
			Expect(defaults).To(HaveLen(3))

			var admin *roleDatamodel.Role
			for _, r := range defaults {
				if r.Name == role.AdminRoleName {
					admin = r
				}
			}
			Expect(admin).NotTo(BeNil())
			Expect(admin.Permissions).To(ConsistOf(auth.AllPermissions()))
		})
	})

	Describe("GetByName", func() {
		It("should return not found for an unknown role", func() {
			_, err := service.GetByName(ctx, "company-1", "Nonexistent")
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})
})
