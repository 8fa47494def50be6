// Package fiche defines the in-memory records collected by the fiche technique
// wizard: the host établissement, the professional encadreur, the stagiaire
// group, the proposed sujet and the technical resources. Records are plain
// values; required-field rules live in pkg/validation and are evaluated against
// a Snapshot, never enforced at rest. Établissement and encadreur carry a
// discriminant (nouveau/existant) and expose a Variant accessor returning the
// sum type consumed by the submission adapter.
package fiche
