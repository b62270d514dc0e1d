package model

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// xmlGene mirrors the conceptual <gene> element of §6: name, presence,
// optional role flags, optional per-gene inter_gene_max_space, and a
// nested list of exchangeable alternates.
type xmlGene struct {
	XMLName           xml.Name  `xml:"gene"`
	Name              string    `xml:"name,attr"`
	Presence          string    `xml:"presence,attr"`
	Loner             bool      `xml:"loner,attr"`
	MultiSystem       bool      `xml:"multi_system,attr"`
	Exchangeable      bool      `xml:"exchangeable,attr"`
	InterGeneMaxSpace *int      `xml:"inter_gene_max_space,attr"`
	Exchangeables     []xmlGene `xml:"exchangeables>gene"`
}

// xmlModel mirrors the conceptual <model> element of §6.
type xmlModel struct {
	XMLName                   xml.Name  `xml:"model"`
	Name                      string    `xml:"name,attr"`
	InterGeneMaxSpace         int       `xml:"inter_gene_max_space,attr"`
	MinMandatoryGenesRequired *int      `xml:"min_mandatory_genes_required,attr"`
	MinGenesRequired          *int      `xml:"min_genes_required,attr"`
	MaxNbGenes                *int      `xml:"max_nb_genes,attr"`
	MultiLoci                 bool      `xml:"multi_loci,attr"`
	Genes                     []xmlGene `xml:"gene"`
}

// ParseXML reads the first <model> element from r: it scans tokens until
// that element starts, then decodes the whole element at once. Only genes
// declared inside that element (and their nested exchangeables) are
// built; references to genes of other model definitions are not resolved.
func ParseXML(r io.Reader) (*Model, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("model definition: no <model> element found")
		}
		if err != nil {
			return nil, errors.Wrap(err, "model definition: decode")
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "model" {
			continue
		}
		var xm xmlModel
		if err := dec.DecodeElement(&xm, &start); err != nil {
			return nil, errors.Wrap(err, "model definition: decode <model>")
		}
		return buildModel(xm)
	}
}

func buildModel(xm xmlModel) (*Model, error) {
	m := New(xm.Name, xm.InterGeneMaxSpace)
	m.MultiLoci = xm.MultiLoci
	m.MaxNbGenes = xm.MaxNbGenes
	if xm.MinMandatoryGenesRequired != nil {
		m.SetMinMandatoryGenesRequired(*xm.MinMandatoryGenesRequired)
	}
	if xm.MinGenesRequired != nil {
		m.SetMinGenesRequired(*xm.MinGenesRequired)
	}

	for _, xg := range xm.Genes {
		g := geneFromXML(xg)
		for _, xalt := range xg.Exchangeables {
			g.WithAlternate(geneFromXML(xalt))
		}
		switch xg.Presence {
		case "mandatory":
			m.AddMandatory(g)
		case "accessory":
			m.AddAccessory(g)
		case "neutral":
			m.AddNeutral(g)
		case "forbidden":
			m.AddForbidden(g)
		default:
			return nil, errors.Errorf("model %s: gene %s has unknown presence %q", m.FQN, g.Name, xg.Presence)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func geneFromXML(xg xmlGene) *Gene {
	g := NewGene(xg.Name)
	g.Loner = xg.Loner
	g.MultiSystem = xg.MultiSystem
	g.Exchangeable = xg.Exchangeable
	g.InterGeneMaxSpace = xg.InterGeneMaxSpace
	return g
}
