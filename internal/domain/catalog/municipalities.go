package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var edomex = []string{
	"Acambay de Ruíz Castañeda", "Acolman", "Aculco", "Almoloya de Alquisiras",
	"Almoloya de Juárez", "Almoloya del Río", "Amanalco", "Amatepec",
	"Amecameca", "Apaxco", "Atenco", "Atizapán", "Atizapán de Zaragoza",
	"Atlacomulco", "Atlautla", "Axapusco", "Ayapango", "Calimaya",
	"Capulhuac", "Coacalco de Berriozábal", "Coatepec Harinas", "Cocotitlán",
	"Coyotepec", "Cuautitlán", "Chalco", "Chapa de Mota", "Chapultepec",
	"Chiautla", "Chicoloapan", "Chiconcuac", "Chimalhuacán", "Donato Guerra",
	"Ecatepec de Morelos", "Ecatzingo", "Huehuetoca", "Hueypoxtla", "Huixquilucan",
	"Isidro Fabela", "Ixtapaluca", "Ixtapan de la Sal", "Ixtapan del Oro",
	"Ixtlahuaca", "Xalatlaco", "Jaltenco", "Jilotepec", "Jilotzingo", "Jiquipilco",
	"Jocotitlán", "Joquicingo", "Juchitepec", "Lerma", "Malinalco", "Melchor Ocampo",
	"Metepec", "Mexicaltzingo", "Morelos", "Naucalpan de Juárez", "Nezahualcóyotl",
	"Nextlalpan", "Nicolás Romero", "Nopaltepec", "Ocoyoacac", "Ocuilan",
	"El Oro", "Otumba", "Otzoloapan", "Otzolotepec", "Ozumba", "Papalotla",
	"La Paz", "Polotitlán", "Rayón", "San Antonio la Isla", "San Felipe del Progreso",
	"San Martín de las Pirámides", "San Mateo Atenco", "San Simón de Guerrero",
	"Santo Tomás", "Soyaniquilpan de Juárez", "Sultepec", "Tecámac", "Tejupilco",
	"Temamatla", "Temascalapa", "Temascalcingo", "Temascaltepec", "Temoaya",
	"Tenancingo", "Tenango del Aire", "Tenango del Valle", "Teoloyucan", "Teotihuacán",
	"Tepetlaoxtoc", "Tepetlixpa", "Tepotzotlán", "Tequixquiac", "Texcaltitlán",
	"Texcalyacac", "Texcoco", "Tezoyuca", "Tianguistenco", "Timilpan", "Tlalmanalco",
	"Tlalnepantla de Baz", "Tlatlaya", "Toluca", "Tonatico", "Tultepec", "Tultitlán",
	"Valle de Bravo", "Villa de Allende", "Villa del Carbón", "Villa Guerrero",
	"Villa Victoria", "Xonacatlán", "Zacazonapan", "Zacualpan", "Zinacantepec",
	"Zumpahuacán", "Zumpango", "Cuautitlán Izcalli", "Luvianos", "San José del Rincón",
	"Tonanitla", "Valle de Chalco Solidaridad",
}

// Municipalities es la lista blanca de municipios con búsqueda tolerante
// a acentos, mayúsculas y espacios repetidos.
type Municipalities struct {
	byKey map[string]string
	names []string
}

func NewMunicipalities(names []string) *Municipalities {
	m := &Municipalities{byKey: make(map[string]string, len(names))}
	for _, n := range names {
		n = strings.Join(strings.Fields(n), " ")
		if n == "" {
			continue
		}
		k := normalizeKey(n)
		if _, dup := m.byKey[k]; dup {
			continue
		}
		m.byKey[k] = n
		m.names = append(m.names, n)
	}
	sort.Strings(m.names)
	return m
}

// EdomexMunicipalities regresa los 125 municipios del Estado de México.
func EdomexMunicipalities() *Municipalities {
	return NewMunicipalities(edomex)
}

// Canonical regresa el nombre oficial que corresponde a name.
func (m *Municipalities) Canonical(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	k := normalizeKey(name)
	if k == "" {
		return "", false
	}
	c, ok := m.byKey[k]
	return c, ok
}

func (m *Municipalities) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *Municipalities) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

func normalizeKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}
