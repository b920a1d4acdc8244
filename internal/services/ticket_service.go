package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"ferry-backend/internal/booking"
	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
	"ferry-backend/internal/utils"
)

// TicketService menghasilkan PDF e-ticket untuk reservasi yang sudah
// dikonfirmasi.
type TicketService struct {
	Manager   *booking.ReservationManager
	Trips     booking.TripStore
	Catalogs  *booking.CatalogSet
	RequestID string
}

// GenerateETicket renders the e-ticket PDF. Only CONFIRMED reservations
// qualify; a hold is not proof of travel.
func (s TicketService) GenerateETicket(reservationID string) ([]byte, string, error) {
	res, err := s.Manager.GetReservation(reservationID)
	if err != nil {
		return nil, "", err
	}
	if res.State != models.StateConfirmed {
		return nil, "", domain.ValidationError{Field: "reservation", Msg: "e-ticket hanya untuk reservasi terkonfirmasi"}
	}
	trip, err := s.Trips.GetTrip(res.TripID)
	if err != nil {
		return nil, "", err
	}
	catalog, err := s.Catalogs.ForRoute(trip.RouteID)
	if err != nil {
		return nil, "", err
	}
	route := catalog.Route()
	origin, _ := route.StopAt(res.Origin)
	destination, _ := route.StopAt(res.Destination)

	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", "reservation_id="+reservationID)
	data, err := buildETicketPDF(res, trip, origin, destination)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%s.pdf", safeFilenamePart(res.ID))
	return data, filename, nil
}

func buildETicketPDF(res models.Reservation, trip models.TripInstance, origin, destination models.Stop) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET FERRY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nama Penumpang : %s", safe(res.PassengerName, "-")),
		fmt.Sprintf("No HP          : %s", safe(res.PassengerPhone, "-")),
		fmt.Sprintf("Kapal          : %s", safe(trip.VesselName, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(origin.Name, "-"), safe(destination.Name, "-")),
		fmt.Sprintf("Tanggal/Jam    : %s %s", safe(trip.TripDate, "-"), safe(trip.TripTime, "-")),
		fmt.Sprintf("Jumlah Seat    : %d", res.SeatCount),
		fmt.Sprintf("Harga per Seat : %s", utils.FormatRupiah(res.PricePerSeat)),
		fmt.Sprintf("Total          : %s", utils.FormatRupiah(res.Total)),
		fmt.Sprintf("Kode Reservasi : %s", res.ID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Harap tunjukkan e-ticket ini saat naik ke kapal.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return replacer.Replace(strings.TrimSpace(s))
}
