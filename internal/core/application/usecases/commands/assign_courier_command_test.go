package commands_test

import (
	"testing"
	"time"

	"devis/internal/core/application/usecases/commands"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignCourierCommand_Success(t *testing.T) {
	// Arrange
	staff := mustActor(quote.ActorStaff)
	requestID, courierID := kernel.NewUUID(), kernel.NewUUID()

	// Act
	cmd, err := commands.NewAssignCourierCommand(staff, requestID, courierID, ptr("  Code 1234 "))

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, staff, cmd.Actor())
	assert.Equal(t, requestID, cmd.RequestID())
	assert.Equal(t, courierID, cmd.CourierID())
	assert.Equal(t, "Code 1234", *cmd.DeliveryDetails())
}

func TestNewAssignCourierCommand_InvalidArguments(t *testing.T) {
	_, err := commands.NewAssignCourierCommand(quote.Actor{}, kernel.UUID{}, kernel.NewUUID(), nil)

	require.Error(t, err)
	require.ErrorIs(t, err, quote.ErrActorIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAssignCourierCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.AssignCourierCommand // zero value, not constructed via constructor

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
}

func TestCommands_ZeroValuesAreRejected(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{"create", commands.CreateQuoteRequestCommand{}.Validate(), commands.ErrCreateQuoteRequestCommandIsNotConstructed},
		{"admin update", commands.AdminUpdateQuoteRequestCommand{}.Validate(), commands.ErrAdminUpdateQuoteRequestCommandIsNotConstructed},
		{"send", commands.GenerateAndSendQuoteCommand{}.Validate(), commands.ErrGenerateAndSendQuoteCommandIsNotConstructed},
		{"preview", commands.PreviewQuoteCommand{}.Validate(), commands.ErrPreviewQuoteCommandIsNotConstructed},
		{"validate", commands.ValidateQuoteCommand{}.Validate(), commands.ErrValidateQuoteCommandIsNotConstructed},
		{"confirm", commands.ConfirmDeliveryCommand{}.Validate(), commands.ErrConfirmDeliveryCommandIsNotConstructed},
		{"absent", commands.MarkClientAbsentCommand{}.Validate(), commands.ErrMarkClientAbsentCommandIsNotConstructed},
		{"resume", commands.ResumeSentQuotesCommand{}.Validate(), commands.ErrResumeSentQuotesCommandIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.want)
		})
	}
}

func TestNewCreateQuoteRequestCommand(t *testing.T) {
	client := mustActor(quote.ActorClient)
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()

	t.Run("drops lines without quantity", func(t *testing.T) {
		cmd, err := commands.NewCreateQuoteRequestCommand(client, []commands.ItemInput{
			{ProductID: p1, Quantity: 4},
			{ProductID: p2, Quantity: 0},
		}, "  Bonjour ")

		require.NoError(t, err)
		assert.Equal(t, []commands.ItemInput{{ProductID: p1, Quantity: 4}}, cmd.Items())
		assert.Equal(t, "Bonjour", cmd.ClientMessage())
	})

	t.Run("nothing left", func(t *testing.T) {
		_, err := commands.NewCreateQuoteRequestCommand(client, []commands.ItemInput{{ProductID: p1, Quantity: -1}}, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("staff cannot submit", func(t *testing.T) {
		_, err := commands.NewCreateQuoteRequestCommand(mustActor(quote.ActorStaff),
			[]commands.ItemInput{{ProductID: p1, Quantity: 1}}, "")

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestNewAdminUpdateQuoteRequestCommand_EmptyItemList(t *testing.T) {
	_, err := commands.NewAdminUpdateQuoteRequestCommand(mustActor(quote.ActorStaff), kernel.NewUUID(),
		commands.AdminUpdateInput{Items: []commands.ItemInput{{ProductID: kernel.NewUUID(), Quantity: 0}}})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewDeliveryCommands(t *testing.T) {
	courier := mustActor(quote.ActorCourier)
	requestID := kernel.NewUUID()
	proof := services.ProofInput{Latitude: ptr(45.0), Longitude: ptr(4.0)}

	confirm, err := commands.NewConfirmDeliveryCommand(courier, requestID, proof)
	require.NoError(t, err)
	assert.Equal(t, proof, confirm.Proof())

	absent, err := commands.NewMarkClientAbsentCommand(courier, requestID, proof)
	require.NoError(t, err)
	assert.Equal(t, courier, absent.Courier())

	_, err = commands.NewConfirmDeliveryCommand(courier, kernel.UUID{}, proof)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewResumeSentQuotesCommand(t *testing.T) {
	cmd, err := commands.NewResumeSentQuotesCommand(5*time.Minute, 100)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cmd.OlderThan())
	assert.Equal(t, 100, cmd.Limit())

	_, err = commands.NewResumeSentQuotesCommand(-time.Second, 100)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewResumeSentQuotesCommand(time.Minute, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
