package company_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cloudmorphix/console/internal/company"
	companyPostgres "github.com/cloudmorphix/console/internal/company/postgres"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
)

var _ = Describe("Company Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *company.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&identityDatamodel.Account{},
			&companyDatamodel.Company{},
			&roleDatamodel.Role{},
			&userDatamodel.User{},
			&userDatamodel.CompanyLookup{},
		)
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := companyPostgres.NewCompanyRepository(db)
		service := company.NewService(repo, fakeHasher{}, nil, slogger)
		handler = company.NewHandler(service)
	})

	registerBody := func(email string) *bytes.Buffer {
		body, err := json.Marshal(company.RegisterDTO{
			CompanyName:   "Acme Analytics",
			Industry:      "Analytics",
			CompanySize:   "11-50",
			AdminFullName: "Alice Admin",
			AdminEmail:    email,
			Password:      "admin-password-1",
		})
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewBuffer(body)
	}

	It("should handle POST /register successfully", func() {
		req := httptest.NewRequest(http.MethodPost, "/register", registerBody("alice@acme.test"))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var created company.Company
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeEmpty())
		Expect(created.Name).To(Equal("Acme Analytics"))
		Expect(created.PlanType).To(Equal(companyDatamodel.PlanTrial))

		var roles int64
		Expect(db.Model(&roleDatamodel.Role{}).Where("company_id = ?", created.ID).Count(&roles).Error).To(Succeed())
		Expect(roles).To(Equal(int64(3)))
	})

	It("should map a duplicate email to 409", func() {
		first := httptest.NewRecorder()
		handler.Register(first, httptest.NewRequest(http.MethodPost, "/register", registerBody("alice@acme.test")))
		Expect(first.Code).To(Equal(http.StatusCreated))

		second := httptest.NewRecorder()
		handler.Register(second, httptest.NewRequest(http.MethodPost, "/register", registerBody("Alice@Acme.TEST")))
		Expect(second.Code).To(Equal(http.StatusConflict))
	})

	It("should map a validation failure to 400", func() {
		body, err := json.Marshal(company.RegisterDTO{
			CompanyName:   "Acme Analytics",
			AdminFullName: "Alice Admin",
			AdminEmail:    "not-an-email",
			Password:      "admin-password-1",
		})
		Expect(err).NotTo(HaveOccurred())

		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a malformed body", func() {
		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{")))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("Company Handler authorization", func() {
	It("should require an authenticated caller on update", func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&companyDatamodel.Company{}, &identityDatamodel.Account{},
			&roleDatamodel.Role{}, &userDatamodel.User{}, &userDatamodel.CompanyLookup{})).To(Succeed())

		repo := companyPostgres.NewCompanyRepository(db)
		service := company.NewService(repo, fakeHasher{}, nil, slogger)
		handler := company.NewHandler(service)

		req := httptest.NewRequest(http.MethodPatch, "/companies/company-1", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		handler.Update(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
