package form

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonathan/member-form/internal/metrics"
	"github.com/jonathan/member-form/internal/store"
	"github.com/jonathan/member-form/internal/store/mocks"
	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

var validRecord = types.FormRecord{
	FullName:    "John Doe",
	Email:       "john@example.com",
	Phone:       "1234567890",
	JobPosition: "1",
	LinkedIn:    "https://www.linkedin.com/in/john-doe",
	GitHub:      "https://github.com/johndoe",
}

func fill(t *testing.T, m *Machine, r types.FormRecord) {
	t.Helper()
	for _, name := range types.Fields() {
		require.NoError(t, m.OnFieldChange(context.Background(), name, r.Value(name)))
	}
}

func newMachine(t *testing.T, g store.Gateway) *Machine {
	t.Helper()
	return New(Config{Validator: validation.New(), Gateway: g})
}

func TestNew_InitialState(t *testing.T) {
	m := newMachine(t, store.NewMemory())

	assert.Equal(t, types.PhaseEditing, m.Phase())
	assert.True(t, m.Record().IsEmpty())
	assert.Empty(t, m.Errors())
	assert.False(t, m.Ready())
	assert.False(t, m.DialogOpen())
	assert.Nil(t, m.Card())
}

func TestOnFieldChange_UpdatesValueAndErrors(t *testing.T) {
	ctx := context.Background()
	m := newMachine(t, store.NewMemory())

	require.NoError(t, m.OnFieldChange(ctx, types.FieldEmail, "invalid-email"))

	v, err := m.FieldValue(types.FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, "invalid-email", v)

	msg, err := m.FieldError(types.FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, validation.MsgEmailInvalid, msg)

	// The whole record is revalidated, so untouched required fields are reported too.
	msg, _ = m.FieldError(types.FieldFullName)
	assert.Equal(t, validation.MsgFullNameRequired, msg)

	require.NoError(t, m.OnFieldChange(ctx, types.FieldEmail, "john@example.com"))
	msg, _ = m.FieldError(types.FieldEmail)
	assert.Empty(t, msg, "message must follow the newest value")
	assert.Equal(t, types.PhaseEditing, m.Phase())
}

func TestOnFieldChange_UnknownField(t *testing.T) {
	m := newMachine(t, store.NewMemory())

	err := m.OnFieldChange(context.Background(), "nickname", "jd")
	var unknown *types.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nickname", unknown.Field)

	_, err = m.FieldError("nickname")
	assert.ErrorAs(t, err, &unknown)
	assert.True(t, m.Record().IsEmpty())
}

func TestOnFieldChange_RejectsInvalidUTF8(t *testing.T) {
	ctx := context.Background()
	g := store.NewMemory()
	m := newMachine(t, g)
	fill(t, m, validRecord)

	err := m.OnFieldChange(ctx, types.FieldFullName, "Jo\xffão")
	var invalid *types.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, validRecord.FullName, m.Record().FullName)

	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	stored, err := store.ReadRecord(ctx, g)
	require.NoError(t, err)
	assert.True(t, stored.Equal(m.Record()), "stored record must equal the record at submit time")
}

func TestRevealTouched_HidesUntouchedUntilSubmit(t *testing.T) {
	ctx := context.Background()
	m := New(Config{Gateway: store.NewMemory(), Reveal: RevealTouched})

	require.NoError(t, m.OnFieldChange(ctx, types.FieldLinkedIn, "https://teste.com.br"))

	assert.Equal(t, types.ErrorMap{
		types.FieldLinkedIn: validation.MsgLinkedInPrefix,
	}, m.Errors())
	msg, _ := m.FieldError(types.FieldFullName)
	assert.Empty(t, msg)

	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	msg, _ = m.FieldError(types.FieldFullName)
	assert.Equal(t, validation.MsgFullNameRequired, msg)
	assert.Len(t, m.Errors(), 5)
}

func TestOnSubmit_InvalidRecordStaysEditing(t *testing.T) {
	ctx := context.Background()
	g := store.NewMemory()
	m := newMachine(t, g)

	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, types.PhaseEditing, m.Phase())

	assert.Equal(t, types.ErrorMap{
		types.FieldFullName:    validation.MsgFullNameRequired,
		types.FieldEmail:       validation.MsgEmailRequired,
		types.FieldPhone:       validation.MsgPhoneRequired,
		types.FieldJobPosition: validation.MsgJobPositionRequired,
	}, m.Errors())

	_, err = store.ReadRecord(ctx, g)
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing persisted on failure")
}

func TestOnSubmit_FailedSubmitKeepsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	g := store.NewMemory()
	require.NoError(t, store.WriteRecord(ctx, g, validRecord))

	m := newMachine(t, g)
	require.NoError(t, m.OnFieldChange(ctx, types.FieldFullName, "Someone Else"))

	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := store.ReadRecord(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, validRecord, stored)
}

func TestFullLifecycle(t *testing.T) {
	ctx := context.Background()
	g := store.NewMemory()
	reg := prometheus.NewRegistry()
	met := metrics.New(reg)
	m := New(Config{Gateway: g, Metrics: met})

	fill(t, m, validRecord)
	assert.True(t, m.Ready())
	assert.Empty(t, m.Errors())

	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.PhaseSubmitted, m.Phase())
	assert.True(t, m.DialogOpen())
	assert.Empty(t, m.Errors())

	stored, err := store.ReadRecord(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, validRecord, stored)

	require.NoError(t, m.OnConfirmAck(ctx))
	assert.Equal(t, types.PhaseConfirmed, m.Phase())
	assert.False(t, m.DialogOpen())
	require.NotNil(t, m.Card())
	assert.Equal(t, validRecord, *m.Card())

	require.NoError(t, m.OnNewRegistration(ctx))
	assert.Equal(t, types.PhaseEditing, m.Phase())
	assert.True(t, m.Record().IsEmpty())
	assert.Empty(t, m.Errors())
	assert.Nil(t, m.Card())

	stored, err = store.ReadRecord(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, validRecord, stored, "stored record survives a new registration")

	assert.Equal(t, 1.0, testutil.ToFloat64(met.Submissions.WithLabelValues(metrics.OutcomeAccepted)))
	assert.Equal(t, 6.0, testutil.ToFloat64(met.FieldEdits.WithLabelValues("fullName"))+
		testutil.ToFloat64(met.FieldEdits.WithLabelValues("email"))+
		testutil.ToFloat64(met.FieldEdits.WithLabelValues("phone"))+
		testutil.ToFloat64(met.FieldEdits.WithLabelValues("jobPosition"))+
		testutil.ToFloat64(met.FieldEdits.WithLabelValues("linkedin"))+
		testutil.ToFloat64(met.FieldEdits.WithLabelValues("github")))
	assert.Equal(t, 1.0, testutil.ToFloat64(met.Transitions.WithLabelValues("confirmed", "editing")))
}

func TestSecondSubmissionOverwrites(t *testing.T) {
	ctx := context.Background()
	g := store.NewMemory()
	m := newMachine(t, g)

	fill(t, m, validRecord)
	_, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	require.NoError(t, m.OnConfirmAck(ctx))
	require.NoError(t, m.OnNewRegistration(ctx))

	second := validRecord
	second.FullName = "Jane Roe"
	second.GitHub = ""
	fill(t, m, second)
	ok, err := m.OnSubmit(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	stored, err := store.ReadRecord(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, second, stored)
}

func TestTransitionsFromWrongPhase(t *testing.T) {
	ctx := context.Background()
	m := newMachine(t, store.NewMemory())

	var te *TransitionError

	err := m.OnConfirmAck(ctx)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, EventAcknowledge, te.Event)
	assert.Equal(t, types.PhaseEditing, te.Phase)

	err = m.OnNewRegistration(ctx)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, EventRestart, te.Event)

	fill(t, m, validRecord)
	_, err = m.OnSubmit(ctx)
	require.NoError(t, err)

	err = m.OnFieldChange(ctx, types.FieldFullName, "Changed")
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "John Doe", m.Record().FullName)

	_, err = m.OnSubmit(ctx)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.PhaseSubmitted, m.Phase())
}

func TestOnSubmit_GatewayFailureLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mocks.NewMockGateway(ctrl)
	boom := errors.New("storage unavailable")
	g.EXPECT().Write(gomock.Any(), store.MemberDataKey, gomock.Any()).Return(boom)

	m := newMachine(t, g)
	fill(t, m, validRecord)

	ok, err := m.OnSubmit(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, types.PhaseEditing, m.Phase())
	assert.False(t, m.DialogOpen())
	assert.Equal(t, validRecord, m.Record())
}

func TestOnConfirmAck_ReadFailureAbortsTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mocks.NewMockGateway(ctrl)
	boom := errors.New("read timeout")
	g.EXPECT().Write(gomock.Any(), store.MemberDataKey, gomock.Any()).Return(nil)
	g.EXPECT().Read(gomock.Any(), store.MemberDataKey).Return(nil, boom)

	m := newMachine(t, g)
	fill(t, m, validRecord)
	ok, err := m.OnSubmit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	err = m.OnConfirmAck(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, types.PhaseSubmitted, m.Phase())
	assert.True(t, m.DialogOpen())
}

func TestOnConfirmAck_MissingRecordStillConfirms(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mocks.NewMockGateway(ctrl)
	g.EXPECT().Write(gomock.Any(), store.MemberDataKey, gomock.Any()).Return(nil)
	g.EXPECT().Read(gomock.Any(), store.MemberDataKey).Return(nil, store.ErrNotFound)

	m := newMachine(t, g)
	fill(t, m, validRecord)
	_, err := m.OnSubmit(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.OnConfirmAck(context.Background()))
	assert.Equal(t, types.PhaseConfirmed, m.Phase())
	assert.Nil(t, m.Card())
}

func TestParseReveal(t *testing.T) {
	tests := []struct {
		in      string
		want    Reveal
		wantErr bool
	}{
		{"", RevealAll, false},
		{"all", RevealAll, false},
		{"touched", RevealTouched, false},
		{"never", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReveal(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
