package tables

var Tables = []interface{}{
	&InscribeJob{},
	&ChainTx{},
}
