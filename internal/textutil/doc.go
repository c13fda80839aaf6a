// Package textutil provides filename helpers shared by the export pipeline.
package textutil
