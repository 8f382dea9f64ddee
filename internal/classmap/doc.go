// Package classmap answers "is this a legacy class name, and what replaced it?".
//
// Mappings come from YAML or TOML files of the form
//
//	classes:
//	  Tx_Extbase_Object_ObjectManager: TYPO3\CMS\Extbase\Object\ObjectManager
//
// Lookups ignore case (full Unicode folding) and surrounding namespace
// separators, so `\tx_extbase_object_objectmanager` finds the entry above.
// Parsed files can be cached on disk in msgpack form, keyed by content hash.
package classmap
