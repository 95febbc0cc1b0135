package astro

// Star is a catalog star with J2000 coordinates.
type Star struct {
	Name string
	RA   float64 // hours, J2000
	Dec  float64 // degrees, J2000
	Mag  float64 // visual magnitude
}

// Vector returns the star's unit direction in EQJ.
func (s Star) Vector() Vec3 {
	return VectorFromSphere(Spherical{Lat: s.Dec, Lon: s.RA * 15, Dist: 1})
}

// StarCatalog holds a collection of stars for rendering.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the navigational stars brighter than
// magnitude 3, brightest first.
func DefaultStarCatalog() StarCatalog {
	return StarCatalog{Stars: brightStars}
}

// Brighter returns the stars at or brighter than mag.
func (c StarCatalog) Brighter(mag float64) []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Mag <= mag {
			out = append(out, s)
		}
	}
	return out
}

var brightStars = []Star{
	{Name: "Sirius", RA: 6.7525, Dec: -16.716, Mag: -1.46},
	{Name: "Canopus", RA: 6.3992, Dec: -52.696, Mag: -0.74},
	{Name: "Arcturus", RA: 14.2610, Dec: 19.182, Mag: -0.05},
	{Name: "Vega", RA: 18.6157, Dec: 38.784, Mag: 0.03},
	{Name: "Capella", RA: 5.2781, Dec: 45.998, Mag: 0.08},
	{Name: "Rigel", RA: 5.2423, Dec: -8.202, Mag: 0.13},
	{Name: "Procyon", RA: 7.6551, Dec: 5.225, Mag: 0.34},
	{Name: "Achernar", RA: 1.6286, Dec: -57.237, Mag: 0.46},
	{Name: "Betelgeuse", RA: 5.9195, Dec: 7.407, Mag: 0.50},
	{Name: "Hadar", RA: 14.0637, Dec: -60.373, Mag: 0.61},
	{Name: "Acrux", RA: 12.4433, Dec: -63.099, Mag: 0.76},
	{Name: "Altair", RA: 19.8464, Dec: 8.868, Mag: 0.76},
	{Name: "Aldebaran", RA: 4.5987, Dec: 16.509, Mag: 0.85},
	{Name: "Antares", RA: 16.4901, Dec: -26.432, Mag: 0.96},
	{Name: "Spica", RA: 13.4199, Dec: -11.161, Mag: 0.97},
	{Name: "Pollux", RA: 7.7553, Dec: 28.026, Mag: 1.14},
	{Name: "Fomalhaut", RA: 22.9609, Dec: -29.622, Mag: 1.16},
	{Name: "Deneb", RA: 20.6905, Dec: 45.280, Mag: 1.25},
	{Name: "Mimosa", RA: 12.7953, Dec: -59.689, Mag: 1.25},
	{Name: "Regulus", RA: 10.1395, Dec: 11.967, Mag: 1.35},
	{Name: "Adhara", RA: 6.9771, Dec: -28.972, Mag: 1.50},
	{Name: "Castor", RA: 7.5767, Dec: 31.889, Mag: 1.58},
	{Name: "Gacrux", RA: 12.5194, Dec: -57.113, Mag: 1.63},
	{Name: "Shaula", RA: 17.5601, Dec: -37.104, Mag: 1.63},
	{Name: "Bellatrix", RA: 5.4189, Dec: 6.350, Mag: 1.64},
	{Name: "Elnath", RA: 5.4382, Dec: 28.608, Mag: 1.65},
	{Name: "Miaplacidus", RA: 9.2200, Dec: -69.717, Mag: 1.68},
	{Name: "Alnilam", RA: 5.6035, Dec: -1.202, Mag: 1.69},
	{Name: "Alnair", RA: 22.1372, Dec: -46.961, Mag: 1.74},
	{Name: "Alioth", RA: 12.9005, Dec: 55.960, Mag: 1.77},
	{Name: "Alnitak", RA: 5.6793, Dec: -1.943, Mag: 1.77},
	{Name: "Dubhe", RA: 11.0621, Dec: 61.751, Mag: 1.79},
	{Name: "Mirfak", RA: 3.4054, Dec: 49.861, Mag: 1.79},
	{Name: "Wezen", RA: 7.1399, Dec: -26.393, Mag: 1.84},
	{Name: "Kaus Australis", RA: 18.4029, Dec: -34.384, Mag: 1.85},
	{Name: "Alkaid", RA: 13.7923, Dec: 49.313, Mag: 1.86},
	{Name: "Avior", RA: 8.3753, Dec: -59.509, Mag: 1.86},
	{Name: "Sargas", RA: 17.6220, Dec: -42.998, Mag: 1.87},
	{Name: "Menkalinan", RA: 5.9921, Dec: 44.948, Mag: 1.90},
	{Name: "Atria", RA: 16.8111, Dec: -69.028, Mag: 1.92},
	{Name: "Alhena", RA: 6.6285, Dec: 16.399, Mag: 1.93},
	{Name: "Peacock", RA: 20.4275, Dec: -56.735, Mag: 1.94},
	{Name: "Alsephina", RA: 8.7451, Dec: -54.709, Mag: 1.96},
	{Name: "Mirzam", RA: 6.3783, Dec: -17.956, Mag: 1.98},
	{Name: "Alphard", RA: 9.4598, Dec: -8.659, Mag: 2.00},
	{Name: "Hamal", RA: 2.1195, Dec: 23.463, Mag: 2.00},
	{Name: "Diphda", RA: 0.7265, Dec: -17.987, Mag: 2.02},
	{Name: "Nunki", RA: 18.9211, Dec: -26.297, Mag: 2.02},
	{Name: "Polaris", RA: 2.5303, Dec: 89.264, Mag: 2.02},
	{Name: "Mizar", RA: 13.3987, Dec: 54.925, Mag: 2.04},
	{Name: "Mirach", RA: 1.1622, Dec: 35.621, Mag: 2.05},
	{Name: "Alpheratz", RA: 0.1398, Dec: 29.091, Mag: 2.06},
	{Name: "Menkent", RA: 14.1114, Dec: -36.370, Mag: 2.06},
	{Name: "Algieba", RA: 9.7642, Dec: 19.842, Mag: 2.08},
	{Name: "Kochab", RA: 14.8451, Dec: 74.156, Mag: 2.08},
	{Name: "Rasalhague", RA: 17.5823, Dec: 12.560, Mag: 2.08},
	{Name: "Saiph", RA: 5.7959, Dec: -9.670, Mag: 2.09},
	{Name: "Algol", RA: 3.1361, Dec: 40.957, Mag: 2.12},
	{Name: "Denebola", RA: 11.8177, Dec: 14.572, Mag: 2.13},
	{Name: "Muhlifain", RA: 12.6919, Dec: -48.960, Mag: 2.17},
	{Name: "Suhail", RA: 9.1333, Dec: -43.433, Mag: 2.21},
	{Name: "Alphecca", RA: 15.5781, Dec: 26.715, Mag: 2.23},
	{Name: "Eltanin", RA: 17.9435, Dec: 51.489, Mag: 2.23},
	{Name: "Mintaka", RA: 5.5335, Dec: -0.299, Mag: 2.23},
	{Name: "Sadr", RA: 20.3705, Dec: 40.257, Mag: 2.23},
	{Name: "Schedar", RA: 0.6751, Dec: 56.537, Mag: 2.23},
	{Name: "Aspidiske", RA: 9.2849, Dec: -59.275, Mag: 2.25},
	{Name: "Naos", RA: 8.0597, Dec: -40.003, Mag: 2.25},
	{Name: "Caph", RA: 0.1530, Dec: 59.150, Mag: 2.27},
	{Name: "Larawag", RA: 16.9770, Dec: -34.293, Mag: 2.29},
	{Name: "Dschubba", RA: 16.0055, Dec: -22.622, Mag: 2.32},
	{Name: "Izar", RA: 14.7498, Dec: 27.074, Mag: 2.37},
	{Name: "Merak", RA: 11.0307, Dec: 56.382, Mag: 2.37},
	{Name: "Ankaa", RA: 0.4381, Dec: -42.306, Mag: 2.38},
	{Name: "Enif", RA: 21.7364, Dec: 9.875, Mag: 2.39},
	{Name: "Girtab", RA: 17.7081, Dec: -39.030, Mag: 2.41},
	{Name: "Scheat", RA: 23.0629, Dec: 28.083, Mag: 2.42},
	{Name: "Sabik", RA: 17.1730, Dec: -15.725, Mag: 2.43},
	{Name: "Phecda", RA: 11.8972, Dec: 53.695, Mag: 2.44},
	{Name: "Aludra", RA: 7.4016, Dec: -29.303, Mag: 2.45},
	{Name: "Markeb", RA: 9.3685, Dec: -55.011, Mag: 2.47},
	{Name: "Navi", RA: 0.9451, Dec: 60.717, Mag: 2.47},
	{Name: "Aljanah", RA: 20.7702, Dec: 33.970, Mag: 2.48},
	{Name: "Markab", RA: 23.0793, Dec: 15.205, Mag: 2.49},
	{Name: "Alderamin", RA: 21.3097, Dec: 62.586, Mag: 2.51},
	{Name: "Zosma", RA: 11.2351, Dec: 20.524, Mag: 2.56},
	{Name: "Arneb", RA: 5.5455, Dec: -17.822, Mag: 2.58},
	{Name: "Gienah", RA: 12.2635, Dec: -17.542, Mag: 2.59},
	{Name: "Zubeneschamali", RA: 15.2835, Dec: -9.383, Mag: 2.61},
	{Name: "Acrab", RA: 16.0906, Dec: -19.805, Mag: 2.62},
	{Name: "Phact", RA: 5.6608, Dec: -34.074, Mag: 2.64},
	{Name: "Sheratan", RA: 1.9107, Dec: 20.808, Mag: 2.64},
	{Name: "Kraz", RA: 12.5731, Dec: -23.397, Mag: 2.65},
	{Name: "Unukalhai", RA: 15.7378, Dec: 6.426, Mag: 2.65},
	{Name: "Hassaleh", RA: 5.0328, Dec: 33.166, Mag: 2.69},
	{Name: "Tarazed", RA: 19.7710, Dec: 10.613, Mag: 2.72},
	{Name: "Porrima", RA: 12.6943, Dec: -1.449, Mag: 2.74},
	{Name: "Yed Prior", RA: 16.2391, Dec: -3.694, Mag: 2.75},
	{Name: "Zubenelgenubi", RA: 14.8480, Dec: -16.042, Mag: 2.75},
	{Name: "Cursa", RA: 5.1309, Dec: -5.086, Mag: 2.79},
	{Name: "Rastaban", RA: 17.5072, Dec: 52.301, Mag: 2.79},
	{Name: "Cor Caroli", RA: 12.9338, Dec: 38.318, Mag: 2.81},
	{Name: "Vindemiatrix", RA: 13.0363, Dec: 10.959, Mag: 2.83},
	{Name: "Nihal", RA: 5.4707, Dec: -20.759, Mag: 2.84},
	{Name: "Alcyone", RA: 3.7914, Dec: 24.105, Mag: 2.87},
	{Name: "Tejat", RA: 6.3827, Dec: 22.513, Mag: 2.88},
	{Name: "Gomeisa", RA: 7.4525, Dec: 8.289, Mag: 2.90},
	{Name: "Sadalsuud", RA: 21.5260, Dec: -5.571, Mag: 2.91},
	{Name: "Algorab", RA: 12.4977, Dec: -16.515, Mag: 2.95},
	{Name: "Sadalmelik", RA: 22.0964, Dec: -0.320, Mag: 2.96},
	{Name: "Aldhanab", RA: 21.3311, Dec: -16.127, Mag: 3.00},
	{Name: "Pherkad", RA: 15.3455, Dec: 71.834, Mag: 3.00},
}
