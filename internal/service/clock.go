package service

import "time"

// Clock abstrae la fuente de tiempo para registros de interacción y
// cálculos de ventanas de uso; se sustituye en pruebas.
type Clock func() time.Time

// SystemClock devuelve la hora actual en UTC.
func SystemClock() time.Time { return time.Now().UTC() }
