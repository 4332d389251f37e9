package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudmorphix/console/internal/audit"
	auditDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/audit"
	"github.com/cloudmorphix/console/internal/core/events"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Service Suite")
}

// Mock audit repository for testing
type mockAuditRepo struct {
	entries   []*auditDatamodel.Entry
	createErr error
}

func (m *mockAuditRepo) Create(entry *auditDatamodel.Entry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*auditDatamodel.Entry, error) {
	out := make([]*auditDatamodel.Entry, 0)
	for _, e := range m.entries {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// opaqueEvent carries a payload the audit writer cannot decode.
type opaqueEvent struct{}

func (opaqueEvent) EventType() string     { return events.AuditEntryRecorded }
func (opaqueEvent) EventID() string       { return "evt-opaque" }
func (opaqueEvent) OccurredAt() time.Time { return time.Now() }
func (opaqueEvent) Payload() interface{}  { return "not-a-map" }

var _ = Describe("AuditService", func() {
	var (
		service  *audit.Service
		mockRepo *mockAuditRepo
		bus      *events.EventBus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = &mockAuditRepo{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		service = audit.NewService(mockRepo, logger)
		service.SubscribeTo(bus)
		ctx = context.Background()
	})

	Describe("event subscription", func() {
		It("should persist a published audit event", func() {
			event := events.NewAuditEntryRecorded("company-1", "user-1", "Alice", "alice@acme.test", "created role \"Auditor\"")
			err := bus.PublishSync(ctx, event)
			Expect(err).NotTo(HaveOccurred())

			Expect(mockRepo.entries).To(HaveLen(1))
			entry := mockRepo.entries[0]
			Expect(entry.CompanyID).To(Equal("company-1"))
			Expect(entry.ActorID).To(Equal("user-1"))
			Expect(entry.ActorName).To(Equal("Alice"))
			Expect(entry.ActorEmail).To(Equal("alice@acme.test"))
			Expect(entry.Message).To(Equal("created role \"Auditor\""))
			Expect(entry.CreatedAt).To(BeTemporally("~", event.OccurredAt(), time.Second))
		})

		It("should swallow repository failures", func() {
			mockRepo.createErr = errors.New("disk full")
			event := events.NewAuditEntryRecorded("company-1", "user-1", "Alice", "alice@acme.test", "removed Bob")
			err := bus.PublishSync(ctx, event)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.entries).To(BeEmpty())
		})

		It("should ignore events with an unexpected payload", func() {
			err := bus.PublishSync(ctx, opaqueEvent{})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.entries).To(BeEmpty())
		})
	})

	Describe("ListByCompany", func() {
		BeforeEach(func() {
			for _, msg := range []string{"registered company", "invited bob", "changed role of Bob"} {
				event := events.NewAuditEntryRecorded("company-1", "user-1", "Alice", "alice@acme.test", msg)
				Expect(bus.PublishSync(ctx, event)).To(Succeed())
			}
			other := events.NewAuditEntryRecorded("company-2", "user-9", "Eve", "eve@other.test", "registered company")
			Expect(bus.PublishSync(ctx, other)).To(Succeed())
		})

		It("should only return the requested company's trail", func() {
			entries, err := service.ListByCompany(ctx, "company-1", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			for _, e := range entries {
				Expect(e.CompanyID).To(Equal("company-1"))
			}
		})

		It("should honor limit and offset", func() {
			entries, err := service.ListByCompany(ctx, "company-1", 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})
})
