package appointment

// Presentation é o rótulo e o estilo exibidos para cada status.
type Presentation struct {
	Label string `json:"label"`
	Style string `json:"style"`
}

var presentations = map[Status]Presentation{
	StatusPending:   {Label: "Pendiente", Style: "warning"},
	StatusConfirmed: {Label: "Confirmada", Style: "info"},
	StatusCompleted: {Label: "Completada", Style: "success"},
	StatusCancelled: {Label: "Cancelada", Style: "secondary"},
	StatusRejected:  {Label: "Rechazada", Style: "danger"},
}

func PresentationOf(s Status) Presentation {
	if p, ok := presentations[s]; ok {
		return p
	}
	return Presentation{Label: string(s), Style: "secondary"}
}
