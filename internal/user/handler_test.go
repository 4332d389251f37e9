package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/role"
	"github.com/cloudmorphix/console/internal/user"
)

var _ = Describe("User Handler", func() {
	var (
		handler     *user.Handler
		mockRepo    *mockUserRepo
		provisioner *mockProvisioner
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepo()
		roles := &mockRoleDirectory{roles: role.Defaults("company-1")}
		provisioner = &mockProvisioner{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := user.NewService(mockRepo, roles, provisioner, nil, logger)
		handler = user.NewHandler(service)
	})

	Describe("UpdateProfile", func() {
		BeforeEach(func() {
			now := time.Now()
			mockRepo.profiles["user-1"] = &userDatamodel.User{
				ID:        "user-1",
				CompanyID: "company-1",
				FullName:  "Bob Builder",
				Email:     "bob@acme.test",
				RoleName:  role.ViewerRoleName,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
		})

		It("should update the caller's own profile", func() {
			body, err := json.Marshal(map[string]string{"full_name": "Robert Builder"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPatch, "/me/profile", bytes.NewBuffer(body))
			req = req.WithContext(internal.ContextWithUserID(req.Context(), "user-1"))
			w := httptest.NewRecorder()

			handler.UpdateProfile(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var updated user.User
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.FullName).To(Equal("Robert Builder"))
			Expect(mockRepo.profiles["user-1"].FullName).To(Equal("Robert Builder"))
		})

		It("should reject a request without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPatch, "/me/profile", bytes.NewBufferString("{}"))
			w := httptest.NewRecorder()

			handler.UpdateProfile(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPatch, "/me/profile", bytes.NewBufferString("{"))
			req = req.WithContext(internal.ContextWithUserID(req.Context(), "user-1"))
			w := httptest.NewRecorder()

			handler.UpdateProfile(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Add", func() {
		It("should map a taken email to 409", func() {
			provisioner.createError = auth.ErrEmailTaken

			body, err := json.Marshal(user.AddUserDTO{
				FullName: "Bob Builder",
				Email:    "bob@acme.test",
				Password: "viewer-password-1",
				RoleName: role.ViewerRoleName,
			})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/companies/company-1/users", bytes.NewBuffer(body))
			actor := &auth.AccessProfile{UserID: "admin-1", CompanyID: "company-1", Permissions: auth.AllPermissions()}
			ctx := auth.ContextWithProfile(req.Context(), actor)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("companyID", "company-1")
			req = req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			handler.Add(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(mockRepo.profiles).To(BeEmpty())
		})
	})
})
