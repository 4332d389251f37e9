package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudmorphix/console/internal/auth"
)

// Mock resolver store for testing
type mockResolverStore struct {
	lookups     map[string]string // userID -> companyID
	companies   map[string]*auth.ResolvedCompany
	users       map[string]*auth.ResolvedUser // userID
	permissions map[string][]string           // roleName
	storeError  error
}

func newMockResolverStore() *mockResolverStore {
	return &mockResolverStore{
		lookups:     make(map[string]string),
		companies:   make(map[string]*auth.ResolvedCompany),
		users:       make(map[string]*auth.ResolvedUser),
		permissions: make(map[string][]string),
	}
}

func (m *mockResolverStore) GetCompanyIDForUser(ctx context.Context, userID string) (string, error) {
	if m.storeError != nil {
		return "", m.storeError
	}
	return m.lookups[userID], nil
}

func (m *mockResolverStore) GetCompany(ctx context.Context, companyID string) (*auth.ResolvedCompany, error) {
	if m.storeError != nil {
		return nil, m.storeError
	}
	return m.companies[companyID], nil
}

func (m *mockResolverStore) GetUser(ctx context.Context, companyID, userID string) (*auth.ResolvedUser, error) {
	if m.storeError != nil {
		return nil, m.storeError
	}
	return m.users[userID], nil
}

func (m *mockResolverStore) GetRolePermissions(ctx context.Context, companyID, roleName string) ([]string, bool, error) {
	if m.storeError != nil {
		return nil, false, m.storeError
	}
	perms, ok := m.permissions[roleName]
	return perms, ok, nil
}

var _ = Describe("Resolver", func() {
	var (
		resolver *auth.Resolver
		store    *mockResolverStore
		ctx      context.Context
	)

	BeforeEach(func() {
		store = newMockResolverStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		resolver = auth.NewResolver(store, logger)
		ctx = context.Background()
	})

	seedMembership := func() {
		store.lookups["user-1"] = "company-1"
		store.companies["company-1"] = &auth.ResolvedCompany{
			ID: "company-1", Name: "Acme", IsActive: true,
		}
		store.users["user-1"] = &auth.ResolvedUser{
			ID: "user-1", FullName: "Alice", Email: "alice@acme.test", RoleName: "Analyst", IsActive: true,
		}
		store.permissions["Analyst"] = []string{auth.PermViewDashboard}
	}

	Context("with a complete membership", func() {
		It("should join user, company and role into a profile", func() {
			seedMembership()

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).NotTo(BeNil())
			Expect(profile.CompanyID).To(Equal("company-1"))
			Expect(profile.CompanyName).To(Equal("Acme"))
			Expect(profile.RoleName).To(Equal("Analyst"))
			Expect(profile.Permissions).To(ConsistOf(auth.PermViewDashboard))
			Expect(profile.IsPlatformOperator).To(BeFalse())
		})

		It("should carry the platform operator flag from the company", func() {
			seedMembership()
			store.companies["company-1"].IsPlatformOperator = true

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.IsPlatformOperator).To(BeTrue())
		})
	})

	Context("when the lookup record is missing", func() {
		It("should resolve to no profile without error", func() {
			profile, err := resolver.Resolve(ctx, "stranger")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).To(BeNil())
		})
	})

	Context("when the lookup points at a missing company", func() {
		It("should resolve to no profile without error", func() {
			store.lookups["user-1"] = "gone-company"

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).To(BeNil())
		})
	})

	Context("when the profile document is missing", func() {
		It("should resolve to no profile without error", func() {
			seedMembership()
			delete(store.users, "user-1")

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).To(BeNil())
		})
	})

	Context("when the user's role was deleted out-of-band", func() {
		It("should resolve the empty permission set, never granting implicit access", func() {
			seedMembership()
			delete(store.permissions, "Analyst")

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).NotTo(BeNil())
			Expect(profile.Permissions).To(BeEmpty())
			Expect(profile.Can(auth.PermViewDashboard)).To(BeFalse())
		})
	})

	Context("when the store fails", func() {
		It("should return an error, distinct from no-profile", func() {
			seedMembership()
			store.storeError = errors.New("connection refused")

			profile, err := resolver.Resolve(ctx, "user-1")
			Expect(err).To(HaveOccurred())
			Expect(profile).To(BeNil())
		})
	})

	Context("with an empty user id", func() {
		It("should resolve to no profile", func() {
			profile, err := resolver.Resolve(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile).To(BeNil())
		})
	})
})

var _ = Describe("AccessProfile", func() {
	It("should answer permission checks from the resolved set", func() {
		profile := &auth.AccessProfile{
			Permissions: []string{auth.PermManageUsers, auth.PermViewDashboard},
		}
		Expect(profile.Can(auth.PermManageUsers)).To(BeTrue())
		Expect(profile.Can(auth.PermManageRoles)).To(BeFalse())
		Expect(profile.CanAny(auth.PermManageRoles, auth.PermViewDashboard)).To(BeTrue())
	})

	It("should deny everything on a nil profile", func() {
		var profile *auth.AccessProfile
		Expect(profile.Can(auth.PermManageUsers)).To(BeFalse())
		Expect(profile.CanAny(auth.PermManageUsers, auth.PermManageRoles)).To(BeFalse())
	})
})
