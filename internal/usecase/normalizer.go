package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"salespulse/internal/domain"
	"salespulse/pkg/logger"
	"salespulse/pkg/metrics"
)

// Source column labels. The export ships Spanish headers and the same
// semantic column can appear with or without diacritics depending on
// which sheet revision produced it; both spellings are accepted and
// the first non-empty value wins.
var (
	colContactID   = []string{"ID contacto"}
	colLocation    = []string{"Ubicacion", "Ubicación"}
	colRegistered  = []string{"Fecha Registro"}
	colClientName  = []string{"Nombre completo"}
	colPhone       = []string{"teléfono", "telefono"}
	colSolution    = []string{"Solucion", "Solución"}
	colStatus      = []string{"Estado"}
	colAttribution = []string{"Atribucion", "Atribución"}
	colAgent       = []string{"Comercial"}
	colStage       = []string{"Etapa"}
	colResolved    = []string{"Fecha ganado/perdido"}
	colDaysToClose = []string{"Tiempo en ganarse (dias)"}
	colCallsOut    = []string{"Nº de llamadas salientes"}
	colCallsFailed = []string{"Nº de llamadas entrantes (fallidas)"}
	colWhatsapp    = []string{"Nº de whatsapp contestados"}
	colCallMinutes = []string{"Duración llamada", "Duracion llamada"}
	colLossReason  = []string{"Motivo perdida", "Motivo pérdida"}
	colRevenue     = []string{"Ingresos"}
)

// Normalizer converts raw CSV rows into typed records. It never
// fails a row: malformed fields degrade to safe defaults and rows are
// dropped only when they carry no content at all.
type Normalizer struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewNormalizer(logger *logger.Logger, metrics *metrics.Metrics) *Normalizer {
	return &Normalizer{
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// NormalizeRow maps one raw row to a record. The second return value
// is false when the row is dropped.
func (n *Normalizer) NormalizeRow(row domain.RawRow) (domain.SaleRecord, bool) {
	id := pickField(row, colContactID)
	if id == "" {
		// No natural key; derive a content hash so identity survives
		// re-fetches of the same data. A fully blank row is dropped.
		id = contentHash(row)
		if id == "" {
			n.metrics.RecordRowDropped()
			return domain.SaleRecord{}, false
		}
	}

	status := parseStatus(pickField(row, colStatus))

	registered, ok := parseDateValue(pickField(row, colRegistered))
	if !ok {
		n.metrics.RecordFieldFallback("registration_date")
		n.logger.WithField("id", id).Debug("Registration date unparseable, using current time")
		registered = n.now()
	}

	// Open records never carry a resolution date.
	var resolved *time.Time
	if status != domain.StatusOpen {
		if t, ok := parseDateValue(pickField(row, colResolved)); ok {
			resolved = &t
		}
	}

	var daysToClose *float64
	if raw := pickField(row, colDaysToClose); raw != "" {
		if v, ok := parseNumberValue(raw); ok && v >= 0 {
			daysToClose = &v
		} else {
			n.metrics.RecordFieldFallback("days_to_close")
		}
	}

	revenue := parseCurrency(pickField(row, colRevenue))
	if revenue < 0 {
		n.metrics.RecordFieldFallback("revenue")
		revenue = 0
	}

	return domain.SaleRecord{
		ID:               id,
		Agent:            fieldOr(row, colAgent, domain.UnassignedAgent),
		ClientName:       fieldOr(row, colClientName, domain.UnknownClient),
		Phone:            pickField(row, colPhone),
		Status:           status,
		Stage:            pickField(row, colStage),
		Revenue:          revenue,
		RegistrationDate: registered,
		ResolutionDate:   resolved,
		DaysToClose:      daysToClose,

		Attribution: fieldOr(row, colAttribution, domain.UnknownValue),
		Location:    fieldOr(row, colLocation, domain.UnknownValue),
		Solution:    fieldOr(row, colSolution, domain.UnknownValue),
		LossReason:  fieldOr(row, colLossReason, domain.UnknownValue),

		CallsOutgoing:       parseCounter(pickField(row, colCallsOut)),
		CallsIncomingFailed: parseCounter(pickField(row, colCallsFailed)),
		WhatsappAnswered:    parseCounter(pickField(row, colWhatsapp)),
		CallDuration:        parseDuration(pickField(row, colCallMinutes)),
	}, true
}

// NormalizeAll runs every row through NormalizeRow, keeping snapshot
// order.
func (n *Normalizer) NormalizeAll(rows []domain.RawRow) []domain.SaleRecord {
	records := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		record, ok := n.NormalizeRow(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	n.metrics.RecordRowsProcessed(len(records))
	return records
}

func pickField(row domain.RawRow, keys []string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return ""
}

func fieldOr(row domain.RawRow, keys []string, fallback string) string {
	if v := pickField(row, keys); v != "" {
		return v
	}
	return fallback
}

func parseStatus(raw string) domain.SaleStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ganado":
		return domain.StatusWon
	case "perdido":
		return domain.StatusLost
	default:
		return domain.StatusOpen
	}
}

var currencyClean = regexp.MustCompile(`[^0-9.,-]`)

// parseCurrency normalizes locale-formatted amounts. With both "." and
// "," present the string is read as European grouping ("1.200,50" ->
// 1200.50); a lone comma is a decimal comma ("1200,50" -> 1200.50); a
// lone dot is a decimal point ("2.500" -> 2.5). Unparseable input is 0.
func parseCurrency(raw string) float64 {
	if raw == "" {
		return 0
	}
	clean := currencyClean.ReplaceAllString(raw, "")

	switch {
	case strings.Contains(clean, ",") && strings.Contains(clean, "."):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case strings.Contains(clean, ","):
		clean = strings.Replace(clean, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseNumberValue(raw string) (float64, bool) {
	clean := currencyClean.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseCounter(raw string) int {
	v, ok := parseNumberValue(raw)
	if !ok || v < 0 {
		return 0
	}
	return int(v)
}

func parseDuration(raw string) float64 {
	v, ok := parseNumberValue(raw)
	if !ok || v < 0 {
		return 0
	}
	return v
}

// isoLayouts are tried before the slash-delimited day-first fallback.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var slashLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006",
}

// parseDateValue parses the two date encodings seen in the export:
// ISO-like "2006-01-02" (midnight of that day) and day-first
// "2/12/2025 13:27:14".
func parseDateValue(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range slashLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// contentHash derives a deterministic identifier from the non-empty
// cells of a row. Empty rows hash to "".
func contentHash(row domain.RawRow) string {
	keys := make([]string, 0, len(row))
	for k, v := range row {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(strings.TrimSpace(row[k])))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
