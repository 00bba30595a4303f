package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"deskwatch/internal/deskapi"
	"deskwatch/internal/notify"
	"deskwatch/internal/notify/mocks"
	"deskwatch/internal/overdue"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type DispatcherSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockRecords *mocks.MockRecordCreator
	dispatcher  *notify.Dispatcher
	ctx         context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRecords = mocks.NewMockRecordCreator(s.ctrl)
	s.ctx = context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.dispatcher, err = notify.NewDispatcher(s.mockRecords,
		notify.WithLogger(logger),
		notify.WithClock(func() time.Time { return fixedNow }),
	)
	s.Require().NoError(err)
}

func (s *DispatcherSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testSettings() *deskapi.Settings {
	return &deskapi.Settings{
		NotificationsEnabled: true,
		Kiosk: deskapi.KioskSettings{
			SenderEmail:  "frontdesk@acme.example",
			SupportEmail: "security@acme.example",
			CompanyName:  "Acme",
		},
	}
}

func assetViolation() overdue.Violation {
	return overdue.Violation{
		Kind: overdue.KindAsset,
		Asset: &deskapi.AssetLoan{
			ID:             "al-1",
			EquipmentName:  "Projector",
			BorrowerName:   "Dana Whitfield",
			StaffInCharge:  "M. Osei",
			Reason:         overdue.ReasonCampusMove,
			TargetLocation: "North Campus",
			Status:         deskapi.AssetStatusInTransit,
		},
		Hours:   1,
		Minutes: 30,
	}
}

func keyViolation() overdue.Violation {
	return overdue.Violation{
		Kind: overdue.KindKey,
		Key: &deskapi.KeyLoan{
			ID:           "kl-1",
			KeyNumber:    "K-204",
			BorrowerID:   "emp-77",
			BorrowerName: "Priya Nair",
			Purpose:      "Server room access",
			Status:       deskapi.KeyStatusOut,
			BorrowedAt:   fixedNow.Add(-26 * time.Hour),
		},
	}
}

func (s *DispatcherSuite) TestNew() {
	s.Run("requires a record creator", func() {
		_, err := notify.NewDispatcher(nil)
		s.Error(err)
	})
}

func (s *DispatcherSuite) TestDispatchAssetViolation() {
	hosts := []deskapi.Host{
		{ID: "h-1", FullName: "Dana Whitfield", Email: "dana@acme.example", Status: deskapi.HostStatusActive},
	}

	var got []deskapi.NotificationRecord
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record deskapi.NotificationRecord) error {
			got = append(got, record)
			return nil
		}).
		Times(2)

	result := s.dispatcher.Dispatch(s.ctx, testSettings(), hosts, []overdue.Violation{assetViolation()})

	s.Equal(2, result.Delivered)
	s.Empty(result.Failed)
	s.Require().Len(got, 2)

	host, borrower := got[0], got[1]
	s.Equal(deskapi.RoleHost, host.Role)
	s.Equal("security@acme.example", host.Recipient)
	s.Equal(deskapi.RoleBorrower, borrower.Role)
	s.Equal("dana@acme.example", borrower.Recipient)

	for _, record := range got {
		s.Equal(deskapi.TriggerOverdueAlert, record.Trigger)
		s.Equal(deskapi.StatusSent, record.Status)
		s.Equal(deskapi.ChannelEmail, record.Channel)
		s.Equal("frontdesk@acme.example", record.Sender)
		s.Equal(fixedNow, record.Timestamp)
		s.Contains(record.Message, "Dana Whitfield")
		s.Contains(record.Message, "1 hour(s) and 30 minute(s)")
	}
}

func (s *DispatcherSuite) TestDispatchResolvesKeyBorrowerByID() {
	// Directory name differs but the borrower ID matches.
	hosts := []deskapi.Host{
		{ID: "emp-77", FullName: "P. Nair", Email: "priya@acme.example", Status: deskapi.HostStatusActive},
	}

	var got []deskapi.NotificationRecord
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record deskapi.NotificationRecord) error {
			got = append(got, record)
			return nil
		}).
		Times(2)

	s.dispatcher.Dispatch(s.ctx, testSettings(), hosts, []overdue.Violation{keyViolation()})

	s.Require().Len(got, 2)
	s.Equal("priya@acme.example", got[1].Recipient)
	s.Contains(got[1].Message, "K-204")
}

func (s *DispatcherSuite) TestDispatchFallsBackWhenNoDirectoryMatch() {
	var got []deskapi.NotificationRecord
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record deskapi.NotificationRecord) error {
			got = append(got, record)
			return nil
		}).
		Times(2)

	s.dispatcher.Dispatch(s.ctx, testSettings(), nil, []overdue.Violation{assetViolation()})

	s.Require().Len(got, 2)
	s.Equal(notify.FallbackRecipientForTest, got[1].Recipient)
}

func (s *DispatcherSuite) TestDispatchIgnoresInactiveHosts() {
	hosts := []deskapi.Host{
		{ID: "h-1", FullName: "Dana Whitfield", Email: "dana@acme.example", Status: deskapi.HostStatusInactive},
	}

	var got []deskapi.NotificationRecord
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record deskapi.NotificationRecord) error {
			got = append(got, record)
			return nil
		}).
		Times(2)

	s.dispatcher.Dispatch(s.ctx, testSettings(), hosts, []overdue.Violation{assetViolation()})

	s.Require().Len(got, 2)
	s.Equal(notify.FallbackRecipientForTest, got[1].Recipient)
}

func (s *DispatcherSuite) TestDispatchIsolatesFailures() {
	// First violation's host copy fails; everything after it still runs.
	calls := 0
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ deskapi.NotificationRecord) error {
			calls++
			if calls == 1 {
				return errors.New("persist unavailable")
			}
			return nil
		}).
		Times(4)

	result := s.dispatcher.Dispatch(s.ctx, testSettings(), nil, []overdue.Violation{assetViolation(), keyViolation()})

	s.Equal(3, result.Delivered)
	s.Require().Len(result.Failed, 1)
	s.Equal("al-1", result.Failed[0].LoanID)
	s.Equal(deskapi.RoleHost, result.Failed[0].Role)
	s.EqualError(result.Failed[0].Err, "persist unavailable")
}

func (s *DispatcherSuite) TestDispatchUsesConfiguredTemplates() {
	settings := testSettings()
	settings.Templates.HostAssetOverdue = "custom host alert for {{borrowerName}}"
	settings.Templates.BorrowerAssetOverdue = "custom borrower alert"

	var got []deskapi.NotificationRecord
	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record deskapi.NotificationRecord) error {
			got = append(got, record)
			return nil
		}).
		Times(2)

	s.dispatcher.Dispatch(s.ctx, settings, nil, []overdue.Violation{assetViolation()})

	s.Require().Len(got, 2)
	s.Equal("custom host alert for Dana Whitfield", got[0].Message)
	s.Equal("custom borrower alert", got[1].Message)
}

func (s *DispatcherSuite) TestChatMirrorFailureDoesNotAffectEmailPath() {
	chat := mocks.NewMockChatPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dispatcher, err := notify.NewDispatcher(s.mockRecords,
		notify.WithLogger(logger),
		notify.WithChatPublisher(chat),
		notify.WithClock(func() time.Time { return fixedNow }),
	)
	s.Require().NoError(err)

	s.mockRecords.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	chat.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	result := dispatcher.Dispatch(s.ctx, testSettings(), nil, []overdue.Violation{assetViolation()})

	s.Equal(2, result.Delivered)
	s.Empty(result.Failed)
}
