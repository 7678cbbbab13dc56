package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Series define una serie de numeración consecutiva con prefijo y ancho de
// relleno fijo, ej. {DH, 5} -> DH00001, DH00002, ...
// El cálculo del siguiente código es puro: la serialización contra escritores
// concurrentes es responsabilidad del caller (constraint único + reintento).
type Series struct {
	Prefix string
	Width  int
}

// Series de la aplicación.
var (
	OrderSeries    = Series{Prefix: "DH", Width: 5} // órdenes de venta
	CustomerSeries = Series{Prefix: "KH", Width: 3} // clientes
)

// First devuelve el primer código de la serie (sufijo 1).
func (s Series) First() string {
	return s.format(1)
}

// Next devuelve el código siguiente al máximo actual de la serie.
// current vacío o con sufijo no numérico (fila histórica corrupta) se trata
// como serie vacía: un dato dañado nunca bloquea nuevas asignaciones.
func (s Series) Next(current string) string {
	n, ok := s.parse(current)
	if !ok {
		return s.First()
	}
	return s.format(n + 1)
}

// Matches indica si code pertenece a la serie (prefijo + sufijo numérico).
func (s Series) Matches(code string) bool {
	_, ok := s.parse(code)
	return ok
}

// parse extrae el sufijo numérico de un código de la serie.
func (s Series) parse(code string) (int64, bool) {
	if !strings.HasPrefix(code, s.Prefix) {
		return 0, false
	}
	suffix := code[len(s.Prefix):]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// format arma el código con relleno de ceros al ancho de la serie.
// Si el número desborda el ancho (DH99999 -> DH100000) se conserva el
// ancho natural: la serie sigue siendo única y creciente.
func (s Series) format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}
