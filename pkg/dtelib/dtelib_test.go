package dtelib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturatools/dte-processor/pkg/dtelib"
)

const minimalXML = `<DTE xmlns="http://www.sii.cl/SiiDte">
  <Documento>
    <Encabezado>
      <IdDoc>
        <TipoDTE>33</TipoDTE>
        <Folio>000123</Folio>
        <FchEmis>2024-05-20</FchEmis>
      </IdDoc>
      <Emisor>
        <RUTEmisor>76123456-5</RUTEmisor>
        <RznSoc>OFICINA SUR S.A.</RznSoc>
      </Emisor>
      <Receptor>
        <RUTRecep>96543210-8</RUTRecep>
        <RznSocRecep>COMERCIAL ANDINA LTDA</RznSocRecep>
      </Receptor>
      <Totales>
        <MntNeto>100000</MntNeto>
        <IVA>19000</IVA>
        <MntTotal>119000</MntTotal>
      </Totales>
    </Encabezado>
    <Detalle>
      <NmbItem>SERVICIO</NmbItem>
      <MontoItem>100000</MontoItem>
    </Detalle>
    <TED version="1.0"><DD><RE>76123456-5</RE><TD>33</TD><F>123</F></DD><FRMT algoritmo="SHA1withRSA">dGltYnJl</FRMT></TED>
  </Documento>
</DTE>`

// End-to-end: a minimal valid document parses into the canonical model and
// renders into a PDF byte stream.
func TestConvert_EndToEnd(t *testing.T) {
	doc, err := dtelib.Parse([]byte(minimalXML))
	require.NoError(t, err)

	assert.Equal(t, "123", doc.Folio)
	assert.Equal(t, "FACTURA ELECTRÓNICA", doc.TypeLabel)
	require.Len(t, doc.Items, 1)
	assert.Empty(t, doc.References)
	assert.Empty(t, doc.Withholding)

	pdf, err := dtelib.NewConverter(dtelib.DefaultStylesheet()).Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestConvert_OneStep(t *testing.T) {
	pdf, err := dtelib.NewConverter(dtelib.DefaultStylesheet()).Convert([]byte(minimalXML))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestConvert_ParseFailure(t *testing.T) {
	_, err := dtelib.NewConverter(dtelib.DefaultStylesheet()).Convert([]byte("no es xml"))
	require.Error(t, err)

	var structErr *dtelib.StructureError
	require.ErrorAs(t, err, &structErr)
}
