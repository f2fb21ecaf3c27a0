package registry

// formats maps ISO 3166 alpha-2 country codes to IBAN format templates.
// Entries are written in four-character groups for readability and
// normalized to space-free form when the registry is built.
//
// Character meanings: b bank code, s branch code, c account number,
// k check digits, x national check digits, p account number prefix,
// t account type, m currency code, i national identification number,
// a balance account number, o owner account number, q BIC bank code,
// 0 reserved always-zero position.
var formats = map[string]string{
	"AD": "ADkk bbbb ssss cccc cccc cccc",
	"AE": "AEkk bbbc cccc cccc cccc ccc",
	"AL": "ALkk bbbs sssx cccc cccc cccc cccc",
	"AT": "ATkk bbbb bccc cccc cccc",
	"AZ": "AZkk bbbb cccc cccc cccc cccc cccc",
	"BA": "BAkk bbbs sscc cccc ccxx",
	"BE": "BEkk bbbc cccc ccxx",
	"BG": "BGkk bbbb ssss ttcc cccc cc",
	"BH": "BHkk bbbb cccc cccc cccc cc",
	"BR": "BRkk bbbb bbbb ssss sccc cccc ccct o",
	"BY": "BYkk bbbb aaaa cccc cccc cccc cccc",
	"CH": "CHkk bbbb bccc cccc cccc c",
	"CR": "CRkk 0bbb cccc cccc cccc cc",
	"CY": "CYkk bbbs ssss cccc cccc cccc cccc",
	"CZ": "CZkk bbbb pppp ppcc cccc cccc",
	"DE": "DEkk bbbb bbbb cccc cccc cc",
	"DK": "DKkk bbbb cccc cccc cx",
	"DO": "DOkk bbbb cccc cccc cccc cccc cccc",
	"EE": "EEkk bbss cccc cccc cccx",
	"ES": "ESkk bbbb ssss xxcc cccc cccc",
	"FI": "FIkk bbbb bbcc cccc cx",
	"FO": "FOkk bbbb cccc cccc cx",
	"FR": "FRkk bbbb bsss sscc cccc cccc cxx",
	"GB": "GBkk bbbb ssss sscc cccc cc",
	"GE": "GEkk bbcc cccc cccc cccc cc",
	"GI": "GIkk bbbb cccc cccc cccc ccc",
	"GL": "GLkk bbbb cccc cccc cx",
	"GR": "GRkk bbbs sssc cccc cccc cccc ccc",
	"GT": "GTkk bbbb mmtt cccc cccc cccc cccc",
	"HR": "HRkk bbbb bbbc cccc cccc c",
	"HU": "HUkk bbbs sssx cccc cccc cccc cccc",
	"IE": "IEkk bbbb ssss sscc cccc cc",
	"IL": "ILkk bbbs sscc cccc cccc ccc",
	"IS": "ISkk bbbb ttcc cccc iiii iiii ii",
	"IT": "ITkk xbbb bbss sssc cccc cccc ccc",
	"KW": "KWkk bbbb cccc cccc cccc cccc cccc cc",
	"KZ": "KZkk bbbc cccc cccc cccc",
	"LB": "LBkk bbbb cccc cccc cccc cccc cccc",
	"LI": "LIkk bbbb bccc cccc cccc c",
	"LT": "LTkk bbbb bccc cccc cccc",
	"LU": "LUkk bbbc cccc cccc cccc",
	"LV": "LVkk bbbb cccc cccc cccc c",
	"MC": "MCkk bbbb bsss sscc cccc cccc cxx",
	"MD": "MDkk bbcc cccc cccc cccc cccc",
	"ME": "MEkk bbbc cccc cccc cccc xx",
	"MK": "MKkk bbbc cccc cccc cxx",
	"MR": "MRkk bbbb bsss sscc cccc cccc cxx",
	"MT": "MTkk bbbb ssss sccc cccc cccc cccc ccc",
	"MU": "MUkk qqqq bbss cccc cccc cccc 000m mm",
	"NL": "NLkk bbbb cccc cccc cc",
	"NO": "NOkk bbbb cccc ccx",
	"PK": "PKkk bbbb cccc cccc cccc cccc",
	"PL": "PLkk bbbs sssx cccc cccc cccc cccc",
	"PS": "PSkk bbbb cccc cccc cccc cccc cccc c",
	"PT": "PTkk bbbb ssss cccc cccc cccx x",
	"QA": "QAkk bbbb cccc cccc cccc cccc cccc c",
	"RO": "ROkk bbbb cccc cccc cccc cccc",
	"RS": "RSkk bbbc cccc cccc cccc xx",
	"SA": "SAkk bbcc cccc cccc cccc cccc",
	"SC": "SCkk qqqq bbss cccc cccc cccc cccc mmm",
	"SE": "SEkk bbbc cccc cccc cccc cccx",
	"SI": "SIkk bbss sccc cccc cxx",
	"SK": "SKkk bbbb pppp ppcc cccc cccc",
	"SM": "SMkk xbbb bbss sssc cccc cccc ccc",
	"TN": "TNkk bbss sccc cccc cccc ccxx",
	"TR": "TRkk bbbb b0cc cccc cccc cccc cc",
	"VG": "VGkk bbbb cccc cccc cccc cccc",
	"XK": "XKkk bbss cccc cccc ccxx",
}

// countryNames holds the English display names, keyed like formats.
var countryNames = map[string]string{
	"AD": "Andorra",
	"AE": "United Arab Emirates",
	"AL": "Albania",
	"AT": "Austria",
	"AZ": "Azerbaijan",
	"BA": "Bosnia and Herzegovina",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"BH": "Bahrain",
	"BR": "Brazil",
	"BY": "Belarus",
	"CH": "Switzerland",
	"CR": "Costa Rica",
	"CY": "Cyprus",
	"CZ": "Czechia",
	"DE": "Germany",
	"DK": "Denmark",
	"DO": "Dominican Republic",
	"EE": "Estonia",
	"ES": "Spain",
	"FI": "Finland",
	"FO": "Faroe Islands",
	"FR": "France",
	"GB": "United Kingdom",
	"GE": "Georgia",
	"GI": "Gibraltar",
	"GL": "Greenland",
	"GR": "Greece",
	"GT": "Guatemala",
	"HR": "Croatia",
	"HU": "Hungary",
	"IE": "Ireland",
	"IL": "Israel",
	"IS": "Iceland",
	"IT": "Italy",
	"KW": "Kuwait",
	"KZ": "Kazakhstan",
	"LB": "Lebanon",
	"LI": "Liechtenstein",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"LV": "Latvia",
	"MC": "Monaco",
	"MD": "Moldova",
	"ME": "Montenegro",
	"MK": "North Macedonia",
	"MR": "Mauritania",
	"MT": "Malta",
	"MU": "Mauritius",
	"NL": "Netherlands",
	"NO": "Norway",
	"PK": "Pakistan",
	"PL": "Poland",
	"PS": "Palestine",
	"PT": "Portugal",
	"QA": "Qatar",
	"RO": "Romania",
	"RS": "Serbia",
	"SA": "Saudi Arabia",
	"SC": "Seychelles",
	"SE": "Sweden",
	"SI": "Slovenia",
	"SK": "Slovakia",
	"SM": "San Marino",
	"TN": "Tunisia",
	"TR": "Turkey",
	"VG": "British Virgin Islands",
	"XK": "Kosovo",
}
