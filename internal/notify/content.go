package notify

import (
	"fmt"
	"html"
	"strconv"

	"alugae-backend/internal/domain"
)

// Content is the rendered availability notice shared by every channel.
type Content struct {
	Subject string
	Title   string
	Text    string
	HTML    string
	Link    string
	Data    map[string]string
}

// RenderAvailability builds the Portuguese texts of an availability notice.
func RenderAvailability(n *domain.AvailabilityNotice, baseURL string) Content {
	vehicle := n.Vehicle.DisplayName()
	start := n.DesiredDates.Start.Format("02/01/2006")
	end := n.DesiredDates.End.Format("02/01/2006")
	link := fmt.Sprintf("%s/vehicle/%d", baseURL, n.Vehicle.ID)

	text := fmt.Sprintf("O veículo %s está disponível de %s até %s! Reserve agora: %s", vehicle, start, end, link)

	body := fmt.Sprintf(`<html>
	<body>
		<h2>Veículo disponível - alugae.mobi</h2>
		<p>Olá, %s!</p>
		<p>O veículo <strong>%s</strong> que você estava aguardando agora está disponível.</p>
		<ul>
			<li><strong>Veículo:</strong> %s</li>
			<li><strong>Período desejado:</strong> %s até %s</li>
		</ul>
		<p><a href="%s">Ver veículo e reservar</a></p>
	</body>
</html>`, html.EscapeString(n.User.Name), html.EscapeString(vehicle), html.EscapeString(vehicle), start, end, link)

	return Content{
		Subject: fmt.Sprintf("Veículo disponível: %s", vehicle),
		Title:   fmt.Sprintf("Veículo %s disponível!", vehicle),
		Text:    text,
		HTML:    body,
		Link:    link,
		Data: map[string]string{
			"type":               domain.NotificationTypeVehicleAvailable,
			"vehicle_id":         strconv.Itoa(int(n.Vehicle.ID)),
			"desired_start_date": n.DesiredDates.Start.Format(domain.DateLayout),
			"desired_end_date":   n.DesiredDates.End.Format(domain.DateLayout),
			"link":               link,
		},
	}
}
