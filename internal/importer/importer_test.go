package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	catalogtransport "modtok/internal/catalog/transport"
	"modtok/platform/apperr"
	"modtok/platform/logger"
)

type stubCreator struct {
	created []catalogtransport.CreateEntityRequest
	failOn  string
}

func (s *stubCreator) CreateEntity(_ context.Context, _ string, req catalogtransport.CreateEntityRequest) (*catalogtransport.EntityResponse, error) {
	if s.failOn != "" && req.Name == s.failOn {
		return nil, apperr.Conflict("slug already in use")
	}
	s.created = append(s.created, req)
	return &catalogtransport.EntityResponse{Name: req.Name}, nil
}

const header = "name,email,phone,region,comuna,website,price_from_clp,tier,description\n"

func TestRun_ImportsValidRows(t *testing.T) {
	input := header +
		"Casas del Sur,ventas@casasdelsur.cl,+56 9 1234 5678,Los Lagos,Puerto Varas,https://casasdelsur.cl,45000000,destacado,Casas modulares de madera\n" +
		"Modular Norte,,,,,,,,\n"

	creator := &stubCreator{}
	report, err := New(creator, logger.New("test")).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, report.SuccessCount)
	require.Empty(t, report.FailedRows)
	require.Len(t, creator.created, 2)

	first := creator.created[0]
	require.Equal(t, "Casas del Sur", first.Name)
	require.Equal(t, "draft", first.Status)
	require.Equal(t, "destacado", first.Tier)
	require.NotNil(t, first.PriceFromCLP)
	require.Equal(t, int64(45000000), *first.PriceFromCLP)

	second := creator.created[1]
	require.Equal(t, "Modular Norte", second.Name)
	require.Nil(t, second.Email)
	require.Empty(t, second.Tier)
}

func TestRun_MalformedHeaderFailsWholeRun(t *testing.T) {
	input := "nombre,correo\nCasas del Sur,ventas@casasdelsur.cl\n"

	_, err := New(&stubCreator{}, logger.New("test")).Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)
}

func TestRun_BadRowsFailIndependently(t *testing.T) {
	input := header +
		"Casas del Sur,,,,,,,,\n" +
		",,,,,,,,\n" + // missing name
		"Modular Norte,,,,,,abc,,\n" + // bad price
		"Austral Modular,,,,,,,diamond,\n" + // unknown tier
		"Patagonia Homes,,,,,,,,\n"

	creator := &stubCreator{}
	report, err := New(creator, logger.New("test")).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, report.SuccessCount)
	require.Len(t, report.FailedRows, 3)

	// Line numbers are 1-based and count the header.
	require.Equal(t, 3, report.FailedRows[0].Line)
	require.Equal(t, 4, report.FailedRows[1].Line)
	require.Equal(t, 5, report.FailedRows[2].Line)
}

func TestRun_CreateFailureRecordedPerRow(t *testing.T) {
	input := header +
		"Casas del Sur,,,,,,,,\n" +
		"Duplicada,,,,,,,,\n"

	creator := &stubCreator{failOn: "Duplicada"}
	report, err := New(creator, logger.New("test")).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, report.SuccessCount)
	require.Len(t, report.FailedRows, 1)
	require.Contains(t, report.FailedRows[0].Message, "slug already in use")
}
